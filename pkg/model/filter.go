package model

import "math"

// Layer filters. All of them are pure: the input slice is never modified and
// every kept row satisfies the predicate exactly.

// FilterGenomics keeps variants with CADD >= minCADD.
func FilterGenomics(rows []GenomicVariant, minCADD float64) []GenomicVariant {
	kept := make([]GenomicVariant, 0, len(rows))
	for _, r := range rows {
		if r.CADD >= minCADD {
			kept = append(kept, r)
		}
	}
	return kept
}

// FilterTranscriptomics keeps records with p_value <= maxP and |logFC| >= minAbsLogFC.
func FilterTranscriptomics(rows []ExpressionRecord, maxP, minAbsLogFC float64) []ExpressionRecord {
	kept := make([]ExpressionRecord, 0, len(rows))
	for _, r := range rows {
		if r.PValue <= maxP && math.Abs(r.LogFC) >= minAbsLogFC {
			kept = append(kept, r)
		}
	}
	return kept
}

// FilterProteomics keeps measurements with Intensity >= minIntensity.
func FilterProteomics(rows []ProteinMeasurement, minIntensity float64) []ProteinMeasurement {
	kept := make([]ProteinMeasurement, 0, len(rows))
	for _, r := range rows {
		if r.Intensity >= minIntensity {
			kept = append(kept, r)
		}
	}
	return kept
}
