// Package phantomframe implements the core of a covert video watermarking
// pipeline: deciding which blocks of which frames carry signal, and
// deciding from frame statistics whether a stream carries such a signal.
//
// The core is codec-agnostic. Embedding produces instructions naming a
// block, a frame, and a perturbation direction; applying them to pixels or
// transform coefficients belongs to the codec integration. Detection
// consumes per-frame feature records and never touches compressed video.
//
// # Embedding
//
// Configure a stream, set its geometry, then plan each frame:
//
//	params := embed.DefaultParameters()
//	params.Payload = payload.FromText("license-4711")
//	params.Seed = 12345
//
//	enc, err := phantomframe.NewEncoder(params)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := enc.Initialize(1920, 1080); err != nil {
//	    log.Fatal(err)
//	}
//
//	for frame := uint32(0); frame < frameCount; frame++ {
//	    for _, in := range enc.InstructionsForFrame(frame) {
//	        // nudge the block at (in.X, in.Y) by in.Perturbation
//	    }
//	}
//
// The schedule is deterministic: the same seed, dimensions, and frame
// index always plan the same blocks, which is what detection relies on.
//
// # Detection
//
// Extract features frame by frame, then let the detectors decide:
//
//	ext, err := phantomframe.NewExtractor(phantomframe.NewExtractionConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var records []features.Record
//	for i, frame := range frames {
//	    rec, err := ext.AnalyzeFrame(frame, uint32(i))
//	    if err != nil {
//	        continue // empty frame, skip it
//	    }
//	    records = append(records, rec)
//	}
//
//	res := ext.Extract(records)
//	if res.Detected {
//	    fmt.Printf("watermark %s (confidence %.2f, %s)\n",
//	        res.Payload, res.Confidence, res.Method)
//	}
//
// Detection favors false negatives: short, flat, or ambiguous input
// abstains with a diagnostic instead of guessing.
package phantomframe
