package detect

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/makalin/phantomframe/features"
	"github.com/makalin/phantomframe/payload"
)

// varianceFloor separates real series variation from centering rounding
// noise, relative to the squared series mean.
const varianceFloor = 1e-20

// Periodicity tests the per-frame aggregate variance series for a
// repeating pattern. The raw statistic is the maximum unnormalized
// autocorrelation of the mean-centered series over lags 1..n/2; confidence
// is that maximum's share of the total centered energy, clamped to [0, 1].
// A short, flat, or ambiguous series abstains rather than guessing.
func Periodicity(records []features.Record, cfg Config) Outcome {
	out := Outcome{Method: MethodPeriodicity}

	n := len(records)
	if n < cfg.MinFrames {
		out.Diagnostic = fmt.Sprintf("insufficient frames: got %d, need %d", n, cfg.MinFrames)
		return out
	}

	series := make([]float64, n)
	for i, r := range records {
		series[i] = r.AggregateVariance()
	}

	mean := stat.Mean(series, nil)
	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	// Rounding dust left by centering a constant series is itself constant
	// and would correlate perfectly at every lag, so near-zero variance
	// must count as no variation at all.
	energy := floats.Dot(centered, centered)
	if energy <= varianceFloor*float64(n)*(1+mean*mean) {
		out.Diagnostic = "series has no variation"
		return out
	}

	maxLag := n / 2
	if maxLag < 1 {
		out.Diagnostic = "series too short for autocorrelation"
		return out
	}

	bestLag := 0
	maxCorr := math.Inf(-1)
	for lag := 1; lag <= maxLag; lag++ {
		corr := floats.Dot(centered[:n-lag], centered[lag:])
		if corr > maxCorr {
			maxCorr = corr
			bestLag = lag
		}
	}

	confidence := maxCorr / energy
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Periodicity",
		"frames":     n,
		"best_lag":   bestLag,
		"confidence": confidence,
	}).Debug("Periodicity analysis complete")

	out.Confidence = confidence
	out.Detected = confidence >= cfg.ConfidenceThreshold
	if !out.Detected {
		out.Diagnostic = fmt.Sprintf("no periodic pattern above threshold: confidence %.3f", confidence)
		return out
	}

	out.SeedGuess = uint32(maxLag)
	out.Payload = periodicityPayload(maxCorr, uint32(bestLag), uint32(n), mean)
	out.HasPayload = true
	return out
}

// periodicityPayload maps the autocorrelation statistics to a payload. The
// mapping digests a canonical little-endian encoding of the statistics, so
// equal measurements reconstruct equal payloads in every process. It is a
// stable fingerprint of what was measured, not an inversion of the
// embedding.
func periodicityPayload(strength float64, bestLag, frames uint32, mean float64) payload.Payload {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(strength))
	binary.LittleEndian.PutUint32(buf[8:12], bestLag)
	binary.LittleEndian.PutUint32(buf[12:16], frames)
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(mean))
	return payload.FromDigest(buf[:])
}
