package notionsync

import (
	"time"

	"github.com/dvloznov/convo-judge/internal/judge"
	"github.com/jomei/notionapi"
)

// RunSummaryToNotionProperties converts a judge run summary to Notion properties.
// The Run ID title property is the idempotency key for create-or-update syncs.
func RunSummaryToNotionProperties(sum *judge.RunSummary, syncedAt time.Time) notionapi.Properties {
	props := notionapi.Properties{
		"Run ID": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: sum.RunID,
					},
				},
			},
		},
	}

	// Prompt Variant
	if sum.Variant != "" {
		props["Prompt Variant"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: sum.Variant,
			},
		}
	}

	// Model
	if sum.Model != "" {
		props["Model"] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: sum.Model,
					},
				},
			},
		}
	}

	props["Total Rows"] = notionapi.NumberProperty{
		Number: float64(sum.Total),
	}
	props["True"] = notionapi.NumberProperty{
		Number: float64(sum.TrueCount),
	}
	props["False"] = notionapi.NumberProperty{
		Number: float64(sum.FalseCount),
	}
	props["Errors"] = notionapi.NumberProperty{
		Number: float64(sum.ErrorCount),
	}
	props["Other Labels"] = notionapi.NumberProperty{
		Number: float64(sum.OtherCount),
	}

	if sum.Total > 0 {
		props["True Ratio"] = notionapi.NumberProperty{
			Number: float64(sum.TrueCount) / float64(sum.Total),
		}
	}

	props["Synced At"] = notionapi.DateProperty{
		Date: &notionapi.DateObject{
			Start: (*notionapi.Date)(&syncedAt),
		},
	}

	return props
}
