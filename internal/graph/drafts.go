package graph

import (
	"context"
	"fmt"
	"html"

	"github.com/microsoftgraph/msgraph-sdk-go/models"

	"github.com/alnah/go-profilestamp/internal/host"
)

// Draft is a mail host backed by an Outlook draft. With no id, the first
// insert creates a new draft holding the HTML.
type Draft struct {
	client *Client
	id     string
	marker string
}

// Draft returns the mail host for draft id ("" for a new draft). An empty
// marker uses host.DefaultSelectionMarker.
func (c *Client) Draft(id, marker string) *Draft {
	if marker == "" {
		marker = host.DefaultSelectionMarker
	}
	return &Draft{client: c, id: id, marker: marker}
}

// ID returns the draft id, set once a new draft has been created.
func (d *Draft) ID() string {
	return d.id
}

// InsertHTML writes html into the draft body at the selection marker, or
// at the end of the body. Writes are not retried.
func (d *Draft) InsertHTML(ctx context.Context, fragment string) error {
	if d.id == "" {
		return d.create(ctx, fragment)
	}

	msg, err := d.client.api.getMessage(ctx, d.id, []string{"body", "isDraft"})
	if err != nil {
		return fmt.Errorf("get draft: %w", classifyError(err))
	}
	if isDraft := msg.GetIsDraft(); isDraft != nil && !*isDraft {
		return fmt.Errorf("%w: %s", ErrNotDraft, d.id)
	}

	current := ""
	if body := msg.GetBody(); body != nil && body.GetContent() != nil {
		current = *body.GetContent()
		if ct := body.GetContentType(); ct != nil && *ct == models.TEXT_BODYTYPE {
			current = "<pre>" + html.EscapeString(current) + "</pre>"
		}
	}

	update := models.NewMessage()
	update.SetBody(htmlBody(host.InsertAtSelection(current, fragment, d.marker)))
	if err := d.client.api.updateMessage(ctx, d.id, update); err != nil {
		return fmt.Errorf("update draft: %w", classifyError(err))
	}
	d.client.log.Info("signature inserted into draft", "draft", d.id)
	return nil
}

func (d *Draft) create(ctx context.Context, fragment string) error {
	msg := models.NewMessage()
	msg.SetBody(htmlBody(fragment))

	created, err := d.client.api.createMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("create draft: %w", classifyError(err))
	}
	if created != nil && created.GetId() != nil {
		d.id = *created.GetId()
	}
	d.client.log.Info("signature draft created", "draft", d.id)
	return nil
}

func htmlBody(content string) models.ItemBodyable {
	body := models.NewItemBody()
	body.SetContent(&content)
	contentType := models.HTML_BODYTYPE
	body.SetContentType(&contentType)
	return body
}

var _ host.MailHost = (*Draft)(nil)
