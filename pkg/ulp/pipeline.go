package ulp

import (
	"time"
)

// Pipeline runs parse, validate and batch-local deduplication over a single
// uploaded file. It is not safe for concurrent use; each Extract call owns
// its own seen-set.
type Pipeline struct {
	validator Validator
}

func NewPipeline() *Pipeline {
	return &Pipeline{validator: NewDefaultValidator()}
}

// Extract parses the file content, validates every record and drops
// batch-local duplicates keyed on normalized URL plus username (the first
// occurrence wins, passwords are not part of the key). The report's Added
// count is the extraction-time accepted count; a store insert reports its
// own count. Speed is input bytes divided by elapsed seconds, a throughput
// proxy rather than a record rate.
func (p *Pipeline) Extract(content []byte, fileName string) ([]Record, Report) {
	start := time.Now()

	report := Report{FileName: fileName}
	var accepted []Record
	seen := make(map[string]bool)

	raws, rejections := Parse(content, fileName)
	for _, rej := range rejections {
		report.Invalid++
		report.InvalidDetails = append(report.InvalidDetails, rej.String())
	}

	for _, raw := range raws {
		record, rej := p.validator.Validate(raw)
		if rej != nil {
			report.Invalid++
			report.InvalidDetails = append(report.InvalidDetails, rej.String())
			continue
		}

		key := record.URL + ":" + record.Username
		if seen[key] {
			report.Duplicates++
			continue
		}
		seen[key] = true
		accepted = append(accepted, record)
	}

	report.Added = len(accepted)
	report.ProcessingTime = time.Since(start).Seconds()
	report.Speed = float64(len(content)) / report.ProcessingTime
	return accepted, report
}
