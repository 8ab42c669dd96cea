package core

import "medsimplify/pkg"

// Synthetic notes bundled for demos.  They contain no real patient data.

const DefaultNote = `PATIENT MEDICAL NOTE
Patient ID: 1a2b3c4d-5e6f
Demographics: 67 year old male, White, Non-Hispanic

MEDICAL HISTORY:
Conditions: Essential hypertension, Hyperlipidemia, Type 2 diabetes mellitus, Chronic kidney disease, stage 2 (mild)

MEDICATIONS:
Lisinopril 10mg daily, Atorvastatin 20mg daily, Metformin 1000mg BID

ENCOUNTERS:
- 2024-03-10: Outpatient visit - Reason: Follow-up
- 2024-01-15: Laboratory encounter - Reason: Routine labs

LABORATORY RESULTS:
- 2024-01-15: Hemoglobin A1c - 7.2 %
- 2024-01-15: Creatinine - 1.3 mg/dL
- 2024-01-15: LDL Cholesterol - 110 mg/dL`

const cardiacNote = `PATIENT MEDICAL NOTE
Patient ID: 7g8h9i0j-1k2l
Demographics: 72 year old female, Asian, Non-Hispanic

MEDICAL HISTORY:
Conditions: Coronary atherosclerosis, Atrial fibrillation, Congestive heart failure, Osteoarthritis

MEDICATIONS:
Metoprolol 25mg BID, Warfarin 5mg daily, Furosemide 40mg daily, Lisinopril 20mg daily, Atorvastatin 40mg daily

ENCOUNTERS:
- 2024-02-05: Emergency visit - Reason: Chest pain
- 2024-02-06: Inpatient admission - Reason: Non-ST elevation myocardial infarction
- 2024-02-10: Discharge - Disposition: Home

LABORATORY RESULTS:
- 2024-02-05: Troponin I - 0.2 ng/mL
- 2024-02-05: BNP - 450 pg/mL
- 2024-02-05: Creatinine - 1.1 mg/dL`

const respiratoryNote = `PATIENT MEDICAL NOTE
Patient ID: 3m4n5o6p-7q8r
Demographics: 58 year old female, Black, Non-Hispanic

MEDICAL HISTORY:
Conditions: Chronic obstructive pulmonary disease (COPD), Gastroesophageal reflux disease (GERD), Anxiety disorder

MEDICATIONS:
Albuterol inhaler PRN, Fluticasone/Salmeterol inhaler BID, Omeprazole 20mg daily, Sertraline 50mg daily

ENCOUNTERS:
- 2024-04-02: Outpatient visit - Reason: COPD exacerbation
- 2024-04-02: Pulmonary function test

LABORATORY RESULTS:
- 2024-04-02: SpO2 - 94 %
- 2024-04-02: FEV1 - 65 % predicted
- 2024-04-02: FEV1/FVC ratio - 0.65`

var samples = []pkg.SampleNote{
	{Title: "Sample 1: Diabetes and Hypertension", Note: DefaultNote},
	{Title: "Sample 2: Cardiac Condition", Note: cardiacNote},
	{Title: "Sample 3: Respiratory Condition", Note: respiratoryNote},
}

// Samples returns a copy of the bundled sample notes.
func Samples() []pkg.SampleNote {
	out := make([]pkg.SampleNote, len(samples))
	copy(out, samples)
	return out
}

// SampleByIndex returns the sample at 1-based index n.
func SampleByIndex(n int) (pkg.SampleNote, bool) {
	if n < 1 || n > len(samples) {
		return pkg.SampleNote{}, false
	}
	return samples[n-1], true
}
