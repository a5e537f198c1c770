package filler

// Stage is the last step reached while handling a size token.
type Stage string

const (
	StageParse  Stage = "parse"
	StageCreate Stage = "create"
	StageSend   Stage = "send"
	StageDone   Stage = "done"
)

// Outcome is the result of handling one size token.
type Outcome struct {
	// Index is the 1-based position of Token on the command line.
	Index int
	Token string
	// File is nil when Token could not be parsed.
	File  *File
	Stage Stage
	Err   error
}

// Report collects the outcome of a Run in input order.
type Report struct {
	Dir      string
	Outcomes []Outcome
	// Listing is the device's file listing, empty in no-send mode or when
	// listing failed.
	Listing string
}

// Failed returns the outcomes that ended with an error.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
