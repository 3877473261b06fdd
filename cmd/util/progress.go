package util

// Progress reports on stderr how many of a fixed number of jobs are done.
// Output only appears with -verbose, except for errors.
type Progress struct {
	total, completed, errors int
}

func NewProgress(total int) *Progress {
	return &Progress{total: total}
}

// JobDone records one finished job. A non-nil err is reported and counted
// as a failure.
func (p *Progress) JobDone(err error) {
	if err == nil {
		p.completed++
	} else {
		p.errors++
		if FlagVerbose {
			Warnf("\r%s                                    \n", err)
		} else {
			Warnf("%s", err)
		}
	}

	ratio := 100.0 * (float64(p.completed) / float64(p.total))
	Verbosef("\r%d of %d jobs complete (%0.2f%% done, %d errors)",
		p.completed, p.total, ratio, p.errors)
}

// Close ends the progress line.
func (p *Progress) Close() {
	Verbosef("\n")
}
