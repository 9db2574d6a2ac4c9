package feedback

import "time"

var demoFeedback = []Input{
	{Source: "Support", Message: "The dashboard is loading extremely slowly today, making it impossible to work efficiently.", CustomerType: "Enterprise"},
	{Source: "GitHub", Message: "Love the new API endpoints! They are well-documented and easy to use.", CustomerType: "Mid-Market"},
	{Source: "Discord", Message: "The UI redesign is confusing, I can't find the settings anymore.", CustomerType: "Small Business"},
	{Source: "Twitter", Message: "Your pricing model is too expensive for small teams like ours.", CustomerType: "Small Business"},
	{Source: "Email", Message: "Critical bug: Data export is failing for all our reports this morning.", CustomerType: "Enterprise"},
	{Source: "Support", Message: "Integration with Salesforce keeps disconnecting, very frustrating.", CustomerType: "Enterprise"},
	{Source: "GitHub", Message: "Feature request: Add dark mode to the dashboard interface.", CustomerType: "Individual"},
	{Source: "Discord", Message: "The documentation for the new API is unclear and missing examples.", CustomerType: "Mid-Market"},
	{Source: "Twitter", Message: "Amazing customer support! Resolved my issue in minutes.", CustomerType: "Small Business"},
	{Source: "Email", Message: "Security concern: Two-factor authentication is not working properly.", CustomerType: "Enterprise"},
	{Source: "Support", Message: "Performance has improved significantly after the last update. Great work!", CustomerType: "Mid-Market"},
	{Source: "GitHub", Message: "Bug: Mobile responsive design is broken on iPhone devices.", CustomerType: "Individual"},
	{Source: "Discord", Message: "Would love to see more customization options for the dashboard widgets.", CustomerType: "Small Business"},
	{Source: "Twitter", Message: "Your platform has transformed how we handle customer feedback!", CustomerType: "Enterprise"},
	{Source: "Email", Message: "Urgent: Our team cannot access the analytics module since yesterday.", CustomerType: "Enterprise"},
}

// DemoInputs returns the sample feedback set, one item per day going back from now
func DemoInputs(now time.Time) []Input {
	inputs := make([]Input, len(demoFeedback))
	for i, in := range demoFeedback {
		in.Timestamp = now.Add(-time.Duration(i) * 24 * time.Hour)
		inputs[i] = in
	}
	return inputs
}
