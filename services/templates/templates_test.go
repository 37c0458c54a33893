package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTemplates() *MessageTemplates {
	return NewMessageTemplates("Luxe Salon", "+263771000000", "12 Baker Ave")
}

func TestConfirmation(t *testing.T) {
	msg := newTestTemplates().Confirmation("Rudo", "Friday, 04 September", "14:00", "Gel Manicure", "Tari", "12 Baker Ave")

	assert.Equal(t, TemplateConfirmation, msg.TemplateName)
	assert.Contains(t, msg.Text, "Hi Rudo!")
	assert.Contains(t, msg.Text, "Friday, 04 September")
	assert.Contains(t, msg.Text, "14:00")
	assert.Contains(t, msg.Text, "Gel Manicure")
	assert.Contains(t, msg.Text, "Tari")
	assert.Contains(t, msg.Text, "12 Baker Ave")
	assert.Contains(t, msg.Text, "+263771000000")
	assert.Equal(t, "Rudo", msg.Parameters["customer_name"])
}

func TestConfirmationDefaultsLocation(t *testing.T) {
	msg := newTestTemplates().Confirmation("Rudo", "Friday", "14:00", "Gel Manicure", "Tari", "")
	assert.Contains(t, msg.Text, "Our Salon")
}

func TestCancellationReasonIsOptional(t *testing.T) {
	tmpl := newTestTemplates()

	withReason := tmpl.Cancellation("Rudo", "Friday", "14:00", "staff unavailable")
	assert.Contains(t, withReason.Text, "Reason: staff unavailable")

	withoutReason := tmpl.Cancellation("Rudo", "Friday", "14:00", "")
	assert.NotContains(t, withoutReason.Text, "Reason:")
}

func TestRescheduleCarriesNewSlot(t *testing.T) {
	msg := newTestTemplates().Reschedule("Rudo", "Monday, 07 September", "10:30", "Gel Manicure")

	assert.Equal(t, TemplateReschedule, msg.TemplateName)
	assert.Contains(t, msg.Text, "New date: Monday, 07 September")
	assert.Contains(t, msg.Text, "New time: 10:30")
}

func TestMarketingWrapsCampaignBody(t *testing.T) {
	msg := newTestTemplates().Marketing("Rudo", "August gel special, 20 percent off")

	assert.Equal(t, TemplateMarketing, msg.TemplateName)
	assert.Contains(t, msg.Text, "Hi Rudo!")
	assert.Contains(t, msg.Text, "August gel special, 20 percent off")
	assert.Equal(t, "August gel special, 20 percent off", msg.Parameters["message"])
}
