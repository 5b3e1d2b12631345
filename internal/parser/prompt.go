package parser

import "strings"

// Task names identify the logical request a prompt belongs to.
const (
	TaskExtractMedications = "extract_medications"
	TaskSummarizeReport    = "summarize_report"
	TaskCheckInteraction   = "check_interaction"
)

const jsonOnly = `Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, just the raw JSON object.`

// BuildMedicationExtractionPrompt returns the prompt for extracting medications from a prescription.
func BuildMedicationExtractionPrompt() string {
	return `You are an expert pharmacist. Extract the medication names, dosages, and frequency from the attached prescription.

IMPORTANT INSTRUCTIONS:
- Extract EVERY medication listed on the prescription, in the order they appear.
- Use an empty string for a dosage or frequency that the prescription does not state.
- Do not invent medications that are not on the document.

` + jsonOnly + `

The JSON object must follow this schema:
{
  "medications": [
    {"name": "", "dosage": "", "frequency": ""}
  ]
}`
}

// BuildReportSummaryPrompt returns the prompt for summarizing a lab report.
func BuildReportSummaryPrompt() string {
	return `You are a medical expert skilled at summarizing lab reports for patients.

Provide a concise and easy-to-understand summary of the attached lab report. Focus on the key findings and their implications for the patient's health.

For each key finding, give the medical term, a plain-language explanation, and a status.
The status MUST be one of: "Normal", "High", "Low", "Abnormal", "Borderline".

` + jsonOnly + `

The JSON object must follow this schema:
{
  "summary": "",
  "key_findings": [
    {"term": "", "explanation": "", "status": ""}
  ]
}`
}

// BuildInteractionPrompt returns the prompt for checking medication and food interactions.
func BuildInteractionPrompt(medications, foods []string) string {
	var b strings.Builder
	b.WriteString(`You are a pharmacist expert. Analyze the potential interaction between the medication and food provided.

In your response, provide a "text" description of the interaction and a "severity" level.
The severity MUST be one of four options: "High", "Moderate", "Low", or "Informational".

- Use "High" for dangerous interactions that should be avoided.
- Use "Moderate" for interactions that can cause significant side effects.
- Use "Low" for minor or uncommon interactions.
- Use "Informational" when there is no significant interaction, but there is useful context (e.g., milk slightly delaying absorption).

If no interaction exists, return an empty list of interactions.

Medication:
`)
	for _, m := range medications {
		b.WriteString("- " + m + "\n")
	}
	b.WriteString("\nFood:\n")
	for _, f := range foods {
		b.WriteString("- " + f + "\n")
	}
	b.WriteString("\n" + jsonOnly + `

The JSON object must follow this schema:
{
  "interactions": [
    {"text": "", "severity": ""}
  ]
}`)
	return b.String()
}
