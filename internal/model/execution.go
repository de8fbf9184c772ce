package model

// ExecutionResult captures the outcome of one external command. A non-zero
// return code is reported through Status, not raised as an error.
type ExecutionResult struct {
	Command    string `json:"command"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ReturnCode int    `json:"returncode"`
	Status     string `json:"status"`
}
