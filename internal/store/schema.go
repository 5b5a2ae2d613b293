package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableLLMRequestEvents = "llm_request_events"
	tableGenerationEvents = "generation_events"

	// textSize marks unbounded text columns.
	textSize = 2147483647
)

var (
	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: textSize, Default: ""},
	}
	llmRequestEventsTable = &schema.Table{
		Name:       tableLLMRequestEvents,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{llmRequestEventsColumns[5]},
			},
		},
	}

	generationEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "passage_hash", Type: field.TypeString},
		{Name: "passage_preview", Type: field.TypeString},
		{Name: "provider", Type: field.TypeString},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_stage", Type: field.TypeString, Default: ""},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "blank_count", Type: field.TypeInt, Default: 0},
		{Name: "misaligned_tiers", Type: field.TypeString, Default: ""},
		{Name: "degraded", Type: field.TypeBool, Default: false},
		{Name: "artifact", Type: field.TypeString, Default: ""},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "exercise_json", Type: field.TypeString, Size: textSize, Default: ""},
	}
	generationEventsTable = &schema.Table{
		Name:       tableGenerationEvents,
		Columns:    generationEventsColumns,
		PrimaryKey: []*schema.Column{generationEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "generationevent_passage_hash",
				Unique:  false,
				Columns: []*schema.Column{generationEventsColumns[3]},
			},
		},
	}

	// tables lists every table the store migrates.
	tables = []*schema.Table{
		llmRequestEventsTable,
		generationEventsTable,
	}
)
