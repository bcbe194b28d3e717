package domain

import "time"

// AuditLogEntry is one recorded action on an entity, as the backend's audit
// trail reports it.
type AuditLogEntry struct {
	ID         int            `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   int            `json:"entity_id"`
	Action     string         `json:"action"`
	UserID     *int           `json:"user_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Data       map[string]any `json:"data"`
}

// AuditTab names one tab of the audit report page.
type AuditTab string

const (
	TabGeneral   AuditTab = "general"
	TabESG       AuditTab = "esg"
	TabDocuments AuditTab = "documents"
	TabTrail     AuditTab = "trail"
)

// AuditTabs is the display order of the audit page tabs.
var AuditTabs = []AuditTab{TabGeneral, TabESG, TabDocuments, TabTrail}

// ParseAuditTab maps a raw tab name onto the tab set, defaulting to the
// general tab for anything unknown.
func ParseAuditTab(raw string) AuditTab {
	t := AuditTab(raw)
	for _, known := range AuditTabs {
		if t == known {
			return t
		}
	}
	return TabGeneral
}

// Label returns the tab's display name.
func (t AuditTab) Label() string {
	switch t {
	case TabGeneral:
		return "General"
	case TabESG:
		return "ESG Assessment"
	case TabDocuments:
		return "Documents"
	case TabTrail:
		return "Audit Trail"
	default:
		return string(t)
	}
}

// AuditBundle is everything the audit page shows for one application. It is
// fetched once when the page is entered and reused for tab switches within
// that visit; leaving the page discards it.
type AuditBundle struct {
	Detail LoanApplication
	Full   *ApplicationDetail // lender sessions only
	Docs   []Document
	Trail  []AuditLogEntry
	// TrailNote explains a missing trail; the rest of the report still
	// renders when only the trail fetch failed.
	TrailNote string
}
