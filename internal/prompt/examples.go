package prompt

import "medsimplify/pkg"

// Worked examples spliced into few-shot prompts.  Each bank holds two
// hand-written ORIGINAL/SIMPLIFIED pairs in the register of its audience.

const generalExamples = `EXAMPLE 1:
ORIGINAL:
Patient is a 67-year-old male with hypertension, hyperlipidemia, and type 2 diabetes mellitus. Patient reports dyspnea on exertion and orthopnea. Physical examination reveals bilateral lower extremity edema.

SIMPLIFIED:
You are a 67-year-old man with high blood pressure, high cholesterol, and type 2 diabetes. You mentioned feeling short of breath during activity and when lying flat. During the exam, we noticed swelling in both of your legs.

EXAMPLE 2:
ORIGINAL:
Patient presents with persistent cough for 2 weeks, associated with low-grade fever and myalgia. Chest auscultation reveals rhonchi in the right lower lobe. WBC count elevated at 11,000.

SIMPLIFIED:
You came in with a cough that has lasted for 2 weeks, along with a mild fever and muscle aches. When listening to your lungs, we heard abnormal breathing sounds in the lower right part of your lungs. Your white blood cell count is high at 11,000, which might indicate an infection.`

const elderlyExamples = `EXAMPLE 1:
ORIGINAL:
Patient is a 75-year-old female with hypertension, hyperlipidemia, and osteoarthritis. Patient reports increasing joint pain and difficulty with mobility. Physical examination reveals decreased range of motion in bilateral knees.

SIMPLIFIED:
YOUR HEALTH SUMMARY

You are a 75-year-old woman with high blood pressure, high cholesterol, and arthritis in your joints.

YOUR CURRENT SYMPTOMS:
You mentioned that your joint pain is getting worse and you're having more trouble moving around. When we examined you, we noticed you can't bend your knees as fully as normal.

WHAT THIS MEANS:
Your arthritis may be progressing. This is causing the increased pain and making it harder for you to walk and move.

NEXT STEPS:
We should discuss pain management options and possibly physical therapy to help maintain your mobility and independence.

EXAMPLE 2:
ORIGINAL:
Patient presents with exacerbation of COPD. Pulmonary function tests show FEV1 of 45% predicted and SpO2 of 92% on room air. Started on prednisone 40mg daily for 5 days and increased albuterol inhaler frequency.

SIMPLIFIED:
YOUR HEALTH UPDATE

Your lung condition (COPD) is having a flare-up right now.

YOUR TEST RESULTS:
• Breathing test: Shows your lungs are working at about 45% of normal capacity
• Oxygen level: 92% (normal is 95-100%)

YOUR TREATMENT PLAN:
• New medication: Prednisone pills (40mg) once daily for 5 days
  This helps reduce inflammation in your lungs
• Increase your rescue inhaler (albuterol) as needed
  Use it more often until your breathing improves

IMPORTANT REMINDER:
• Take all medications as directed
• Call us if your breathing gets worse or doesn't improve`

const lowLiteracyExamples = `EXAMPLE 1:
ORIGINAL:
Patient is a 67-year-old male with hypertension, hyperlipidemia, and type 2 diabetes mellitus. Patient reports dyspnea on exertion and occasional orthopnea. Physical examination reveals bilateral lower extremity edema.

SIMPLIFIED:
YOUR HEALTH

You are a 67-year-old man with:
• High blood pressure
• High fat in your blood
• Sugar disease (diabetes)

You told us:
• You get short of breath when you move around
• Sometimes it's hard to breathe when you lie down

We found:
• Your legs are swollen on both sides

What this means:
Your heart may be working too hard. The swelling in your legs happens when fluid builds up.

Next steps:
We need to check your heart. Take your pills every day.

EXAMPLE 2:
ORIGINAL:
Patient presents with complaints of dyspepsia and epigastric pain for 2 weeks, worse after meals. Endoscopy revealed gastric erosions consistent with NSAID gastropathy. H. pylori testing negative.

SIMPLIFIED:
YOUR HEALTH PROBLEM

What you told us:
• Your stomach hurts
• The pain has lasted 2 weeks
• Pain gets worse after you eat

What we found:
• Your stomach has some raw, sore areas inside
• These sores likely came from pain pills you take
• You do not have the stomach germ called H. pylori

What to do now:
• Stop taking ibuprofen, naproxen, or aspirin
• Take the new stomach medicine every day
• Eat smaller meals
• Call us if you see blood in your throw-up or poop`

const eslExamples = `EXAMPLE 1:
ORIGINAL:
Patient is a 58-year-old female who presents with acute onset of severe headache, photophobia, and nuchal rigidity. CT scan negative for hemorrhage. Lumbar puncture performed, results pending. Started on empiric antibiotics for presumed meningitis.

SIMPLIFIED:
YOUR MEDICAL SITUATION

Your symptoms:
• You have a sudden, very bad headache
• Bright light hurts your eyes
• Your neck feels stiff and painful

Tests we did:
• Head scan (CT): No bleeding was found in your brain
• Spinal fluid test: We took some fluid from your spine to test it. We are waiting for results.

Current treatment:
• We started you on strong antibiotics through your IV
• These medications fight infection

What we think might be happening:
We are concerned you might have an infection around your brain and spinal cord. This is called "meningitis."

Next steps:
• You need to stay in the hospital
• We will check your test results when they are ready
• We will watch you closely for any changes

EXAMPLE 2:
ORIGINAL:
Patient with history of CHF presents with increased dyspnea, orthopnea, and peripheral edema. BNP elevated at 850 pg/mL. CXR shows pulmonary edema and cardiomegaly. Started on IV furosemide and increased ACE inhibitor dosage.

SIMPLIFIED:
YOUR HEART CONDITION

Your symptoms now:
• You are having trouble breathing
• You cannot breathe well when lying flat
• Your legs and ankles are swollen

Your test results:
• Blood test: Shows your heart is under stress
• Chest X-ray: Shows fluid in your lungs and your heart is enlarged

Your treatment plan:
• Water pill through IV: This helps remove extra fluid from your body
• Increased dose of your heart medicine: This helps your heart work better

What is happening:
Your heart failure is getting worse right now. This means your heart is not pumping blood well enough. This causes fluid to build up in your lungs and legs.

Important information:
• You need to limit salt in your food
• You need to limit how much liquid you drink
• You should weigh yourself every day
• Call us if you gain more than 2 kg (4 pounds) in one day`

var exampleBanks = map[pkg.Audience]string{
	pkg.AudienceGeneral:     generalExamples,
	pkg.AudienceElderly:     elderlyExamples,
	pkg.AudienceLowLiteracy: lowLiteracyExamples,
	pkg.AudienceESL:         eslExamples,
}

// ExampleBank returns the fixed worked examples used for audience.
func ExampleBank(audience pkg.Audience) string {
	if bank, ok := exampleBanks[audience]; ok {
		return bank
	}
	return generalExamples
}
