// Package batch converts every PDF in a folder into layout documents.
//
// A [Processor] lists the files with a .pdf extension (any case) in an
// input folder, analyzes each one and writes the encoded result to an
// output folder under the same stem:
//
//	p := batch.NewProcessor(logger)
//	summary, err := p.Run(ctx, "in", "out")
//
// A document that cannot be decoded is recorded in [Summary.Failed] and
// produces no output; the remaining documents are still processed. A
// failure to write output stops the batch and is returned from Run.
package batch
