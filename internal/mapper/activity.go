package mapper

import (
	"fmt"
	"strings"

	"github.com/ledgerlane/crm-api/internal/domain"
)

// Each feed variant has its own mapper into the common ActivityEntry projection.

func WebsiteContactActivity(c *domain.WebsiteContact) domain.ActivityEntry {
	return domain.ActivityEntry{
		ID:          c.ID,
		Type:        domain.ActivityKindWebsiteContact,
		Title:       fmt.Sprintf("New website enquiry from %s", c.Name),
		Description: firstNonEmpty(c.Subject, truncate(c.Message, 120)),
		Timestamp:   c.CreatedAt,
		URL:         fmt.Sprintf("/contacts/%s", c.ID),
	}
}

func ClientCommunicationActivity(c *domain.ClientCommunication) domain.ActivityEntry {
	client := "client"
	if c.Client != nil && c.Client.Name != "" {
		client = c.Client.Name
	}
	return domain.ActivityEntry{
		ID:          c.ID,
		Type:        domain.ActivityKindClientCommunication,
		Title:       fmt.Sprintf("%s with %s", capitalize(c.Type), client),
		Description: c.Subject,
		Timestamp:   c.CreatedAt,
		URL:         fmt.Sprintf("/clients/%s", c.ClientID),
	}
}

func TaskActivity(t *domain.Task) domain.ActivityEntry {
	desc := "Status: " + t.Status
	if t.Project != nil {
		desc = fmt.Sprintf("%s in %s", desc, t.Project.Name)
	}
	return domain.ActivityEntry{
		ID:          t.ID,
		Type:        domain.ActivityKindTask,
		Title:       fmt.Sprintf("Task created: %s", t.Title),
		Description: desc,
		Timestamp:   t.CreatedAt,
		URL:         fmt.Sprintf("/tasks/%s", t.ID),
	}
}

func ProjectActivity(p *domain.Project) domain.ActivityEntry {
	desc := "Status: " + p.Status
	if p.Client != nil {
		desc = fmt.Sprintf("%s for %s", desc, p.Client.Name)
	}
	return domain.ActivityEntry{
		ID:          p.ID,
		Type:        domain.ActivityKindProject,
		Title:       fmt.Sprintf("Project started: %s", p.Name),
		Description: desc,
		Timestamp:   p.CreatedAt,
		URL:         fmt.Sprintf("/projects/%s", p.ID),
	}
}

func DealActivity(d *domain.Deal) domain.ActivityEntry {
	company := "No company"
	if d.Company != nil && d.Company.Name != "" {
		company = d.Company.Name
	}
	return domain.ActivityEntry{
		ID:          d.ID,
		Type:        domain.ActivityKindDeal,
		Title:       fmt.Sprintf("Deal added: %s", d.Name),
		Description: fmt.Sprintf("%s, stage %s", company, d.Stage),
		Timestamp:   d.CreatedAt,
		URL:         fmt.Sprintf("/deals/%s", d.ID),
	}
}

func ClientActivity(c *domain.Client) domain.ActivityEntry {
	desc := c.Email
	if c.Company != nil && c.Company.Name != "" {
		desc = c.Company.Name
	}
	return domain.ActivityEntry{
		ID:          c.ID,
		Type:        domain.ActivityKindClient,
		Title:       fmt.Sprintf("New client: %s", c.Name),
		Description: desc,
		Timestamp:   c.CreatedAt,
		URL:         fmt.Sprintf("/clients/%s", c.ID),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func capitalize(s string) string {
	if s == "" {
		return "Communication"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
