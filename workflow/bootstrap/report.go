package bootstrap

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Step names a workflow step.
type Step string

// Workflow steps in execution order.
const (
	StepIdentify     Step = "identify user"
	StepReadName     Step = "read repository name"
	StepRenderTexts  Step = "render texts"
	StepCreateRepo   Step = "create repository"
	StepAddReadme    Step = "add readme"
	StepAddSource    Step = "add source"
	StepCreateIssue  Step = "create issue"
	StepCreateBranch Step = "create branch"
	StepModifyReadme Step = "modify readme"
	StepMergeRequest Step = "open merge request"
	StepOpenBrowser  Step = "open browser"
)

// StepResult is the outcome of one attempted step.
type StepResult struct {
	Step Step
	// StatusCode is zero for steps without an HTTP
	// exchange or when the transport failed.
	StatusCode int
	// Detail is the step's key output (login, URL,
	// commit hash) or the failure.
	Detail string
	Err    error
}

// OK reports whether the step succeeded.
func (sr StepResult) OK() bool {
	return sr.Err == nil
}

// Report lists every attempted step in order.
type Report struct {
	Steps []StepResult
}

// Last returns the last attempted step, if any.
func (r *Report) Last() (StepResult, bool) {
	if len(r.Steps) == 0 {
		return StepResult{}, false
	}

	return r.Steps[len(r.Steps)-1], true
}

// Render writes the report as a table.
func (r *Report) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(true)
	table.SetColWidth(80)
	table.SetBorder(false)
	table.SetColumnSeparator(" ")
	table.SetCenterSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.SetHeader([]string{"Step", "Status", "Result", "Detail"})

	for _, sr := range r.Steps {
		status := ""
		if sr.StatusCode != 0 {
			status = strconv.Itoa(sr.StatusCode)
		}

		result := "ok"
		detail := sr.Detail

		if !sr.OK() {
			result = "failed"
			detail = sr.Err.Error()
		}

		table.Append([]string{
			string(sr.Step), status, result, detail,
		})
	}

	table.Render()
}

func (r *Report) add(sr StepResult) {
	r.Steps = append(r.Steps, sr)
}
