package archetype

import "github.com/pulseboard/dashgen/internal/model"

// Definition is one archetype's compile-time classification and preset data.
type Definition struct {
	Archetype model.Archetype

	// Keywords are matched as substrings of the lowercased workflow name
	// plus entity names. Each keyword present counts one point.
	Keywords []string

	// Platforms earn a 2-point bonus when the platform type matches.
	Platforms []string

	// Threshold is the minimum score required to match. Archetypes with
	// generic vocabularies require 2 to avoid false positives.
	Threshold int

	Blends [3]model.EmphasisBlend
	Titles [3]string
}

// definitions is the ranked archetype table. Slice order is the documented
// tie-break for equal scores. The general archetype is the implicit
// fallback and is never scored.
var definitions = []Definition{
	{
		Archetype: model.ArchetypeOpsMonitoring,
		Keywords:  []string{"monitor", "alert", "error", "health", "uptime", "incident", "failure", "retry"},
		Platforms: []string{"n8n", "make", "zapier"},
		Threshold: 1,
		Blends: [3]model.EmphasisBlend{
			{Dashboard: 0.60, Product: 0.15, Analytics: 0.25},
			{Dashboard: 0.45, Product: 0.20, Analytics: 0.35},
			{Dashboard: 0.30, Product: 0.30, Analytics: 0.40},
		},
		Titles: [3]string{
			"Ops Pulse: %s",
			"%s Health Monitor",
			"%s Incident Overview",
		},
	},
	{
		Archetype: model.ArchetypeLeadPipeline,
		Keywords:  []string{"lead", "crm", "pipeline", "deal", "prospect", "qualification", "sales", "conversion"},
		Platforms: []string{"hubspot", "salesforce", "pipedrive"},
		Threshold: 1,
		Blends: [3]model.EmphasisBlend{
			{Dashboard: 0.50, Product: 0.20, Analytics: 0.30},
			{Dashboard: 0.30, Product: 0.45, Analytics: 0.25},
			{Dashboard: 0.25, Product: 0.25, Analytics: 0.50},
		},
		Titles: [3]string{
			"%s Funnel Board",
			"Pipeline Velocity: %s",
			"%s Conversion Deep-Dive",
		},
	},
	{
		Archetype: model.ArchetypeVoiceAnalytics,
		Keywords:  []string{"call", "voice", "transcript", "phone", "conversation", "caller"},
		Platforms: []string{"vapi", "retell", "twilio", "bland"},
		Threshold: 1,
		Blends: [3]model.EmphasisBlend{
			{Dashboard: 0.50, Product: 0.25, Analytics: 0.25},
			{Dashboard: 0.35, Product: 0.40, Analytics: 0.25},
			{Dashboard: 0.25, Product: 0.30, Analytics: 0.45},
		},
		Titles: [3]string{
			"Call Center Pulse: %s",
			"%s Conversation Insights",
			"%s Voice Quality Review",
		},
	},
	{
		Archetype: model.ArchetypeContentAutomation,
		Keywords:  []string{"content", "post", "publish", "social", "blog", "article", "seo", "newsletter"},
		Platforms: []string{"wordpress", "buffer", "ghost"},
		Threshold: 1,
		Blends: [3]model.EmphasisBlend{
			{Dashboard: 0.45, Product: 0.30, Analytics: 0.25},
			{Dashboard: 0.30, Product: 0.50, Analytics: 0.20},
			{Dashboard: 0.25, Product: 0.25, Analytics: 0.50},
		},
		Titles: [3]string{
			"Publishing Pulse: %s",
			"%s Content Calendar",
			"%s Reach Analytics",
		},
	},
	{
		Archetype: model.ArchetypeDataIntegration,
		Keywords:  []string{"sync", "etl", "integration", "import", "export", "migrate", "webhook", "transform"},
		Platforms: []string{"airbyte", "fivetran"},
		Threshold: 2,
		Blends: [3]model.EmphasisBlend{
			{Dashboard: 0.55, Product: 0.15, Analytics: 0.30},
			{Dashboard: 0.40, Product: 0.25, Analytics: 0.35},
			{Dashboard: 0.30, Product: 0.20, Analytics: 0.50},
		},
		Titles: [3]string{
			"Sync Status: %s",
			"%s Data Flow Monitor",
			"%s Throughput Report",
		},
	},
	{
		Archetype: model.ArchetypeClientReporting,
		Keywords:  []string{"report", "client", "weekly", "summary", "digest", "invoice"},
		Platforms: []string{"airtable", "notion"},
		Threshold: 2,
		Blends: [3]model.EmphasisBlend{
			{Dashboard: 0.45, Product: 0.25, Analytics: 0.30},
			{Dashboard: 0.30, Product: 0.45, Analytics: 0.25},
			{Dashboard: 0.20, Product: 0.30, Analytics: 0.50},
		},
		Titles: [3]string{
			"Client Snapshot: %s",
			"%s Delivery Report",
			"%s Engagement Summary",
		},
	},
	{
		Archetype: model.ArchetypeAIAutomation,
		Keywords:  []string{"gpt", "llm", "agent", "prompt", "openai", "claude", "classify", "summarize"},
		Platforms: []string{"langchain", "flowise"},
		Threshold: 2,
		Blends: [3]model.EmphasisBlend{
			{Dashboard: 0.50, Product: 0.20, Analytics: 0.30},
			{Dashboard: 0.35, Product: 0.35, Analytics: 0.30},
			{Dashboard: 0.25, Product: 0.25, Analytics: 0.50},
		},
		Titles: [3]string{
			"Agent Activity: %s",
			"%s Automation Monitor",
			"%s Model Usage Report",
		},
	},
}

// generalDef is the fallback when nothing matches.
var generalDef = Definition{
	Archetype: model.ArchetypeGeneral,
	Blends: [3]model.EmphasisBlend{
		{Dashboard: 0.50, Product: 0.25, Analytics: 0.25},
		{Dashboard: 0.30, Product: 0.45, Analytics: 0.25},
		{Dashboard: 0.25, Product: 0.25, Analytics: 0.50},
	},
	Titles: [3]string{
		"%s Overview",
		"%s Activity Board",
		"%s Analytics",
	},
}
