package templates

import "fmt"

// Template names registered with the WhatsApp business account.
const (
	TemplateConfirmation = "booking_confirmation"
	TemplateReminder24h  = "reminder_24h"
	TemplateReminder1h   = "reminder_1h"
	TemplateAftercare    = "aftercare"
	TemplateCancellation = "cancellation"
	TemplateReschedule   = "reschedule"
	TemplateMarketing    = "marketing"
)

// Message is rendered message text plus the template parameters sent to the
// provider for pre-approved template delivery.
type Message struct {
	Text         string
	TemplateName string
	Parameters   map[string]string
}

// MessageTemplates renders notification message bodies.
type MessageTemplates struct {
	businessName    string
	businessPhone   string
	businessAddress string
}

// NewMessageTemplates creates a template renderer with the salon's details.
func NewMessageTemplates(businessName, businessPhone, businessAddress string) *MessageTemplates {
	return &MessageTemplates{
		businessName:    businessName,
		businessPhone:   businessPhone,
		businessAddress: businessAddress,
	}
}

// Confirmation renders the booking confirmation message.
func (t *MessageTemplates) Confirmation(clientName, appointmentDate, appointmentTime, treatmentName, staffName, location string) Message {
	if location == "" {
		location = "Our Salon"
	}
	text := fmt.Sprintf(`Hi %s!

Your appointment has been confirmed!

Date: %s
Time: %s
Treatment: %s
With: %s
Location: %s

We look forward to seeing you!

If you need to reschedule, please contact us at %s.

- %s`, clientName, appointmentDate, appointmentTime, treatmentName, staffName, location, t.businessPhone, t.businessName)

	return Message{
		Text:         text,
		TemplateName: TemplateConfirmation,
		Parameters: map[string]string{
			"customer_name":    clientName,
			"appointment_date": appointmentDate,
			"appointment_time": appointmentTime,
			"treatment_name":   treatmentName,
			"staff_name":       staffName,
		},
	}
}

// Reminder24h renders the 24-hour reminder message.
func (t *MessageTemplates) Reminder24h(clientName, appointmentDate, appointmentTime, treatmentName, staffName string) Message {
	text := fmt.Sprintf(`Hi %s!

Just a friendly reminder about your appointment tomorrow:

%s at %s
%s with %s

See you soon!

Need to reschedule? Call us at %s

- %s`, clientName, appointmentDate, appointmentTime, treatmentName, staffName, t.businessPhone, t.businessName)

	return Message{
		Text:         text,
		TemplateName: TemplateReminder24h,
		Parameters: map[string]string{
			"customer_name":    clientName,
			"appointment_date": appointmentDate,
			"appointment_time": appointmentTime,
			"treatment_name":   treatmentName,
		},
	}
}

// Reminder1h renders the 1-hour reminder message.
func (t *MessageTemplates) Reminder1h(clientName, appointmentTime, treatmentName string) Message {
	text := fmt.Sprintf(`Hi %s!

Quick reminder: Your %s appointment is at %s (in about 1 hour).

See you soon!

- %s`, clientName, treatmentName, appointmentTime, t.businessName)

	return Message{
		Text:         text,
		TemplateName: TemplateReminder1h,
		Parameters: map[string]string{
			"customer_name":    clientName,
			"appointment_time": appointmentTime,
			"treatment_name":   treatmentName,
		},
	}
}

// Aftercare renders the post-appointment aftercare message.
func (t *MessageTemplates) Aftercare(clientName, treatmentName string) Message {
	text := fmt.Sprintf(`Hi %s!

Thank you for choosing %s!

We hope you loved your %s. Here are some aftercare tips:

- Avoid touching the treated area for 24 hours
- Stay hydrated
- Use gentle, fragrance-free products
- Contact us if you have any concerns

We'd love to hear your feedback! Book your next appointment at %s.

- %s`, clientName, t.businessName, treatmentName, t.businessPhone, t.businessName)

	return Message{
		Text:         text,
		TemplateName: TemplateAftercare,
		Parameters: map[string]string{
			"customer_name":  clientName,
			"treatment_name": treatmentName,
		},
	}
}

// Cancellation renders the cancellation notice.
func (t *MessageTemplates) Cancellation(clientName, appointmentDate, appointmentTime, reason string) Message {
	reasonText := ""
	if reason != "" {
		reasonText = "\nReason: " + reason
	}
	text := fmt.Sprintf(`Hi %s,

Your appointment on %s at %s has been cancelled.%s

We hope to see you again soon! To book a new appointment, contact us at %s.

- %s`, clientName, appointmentDate, appointmentTime, reasonText, t.businessPhone, t.businessName)

	return Message{
		Text:         text,
		TemplateName: TemplateCancellation,
		Parameters: map[string]string{
			"customer_name":    clientName,
			"appointment_date": appointmentDate,
			"appointment_time": appointmentTime,
		},
	}
}

// Reschedule renders the reschedule notice with the new slot.
func (t *MessageTemplates) Reschedule(clientName, newDate, newTime, treatmentName string) Message {
	text := fmt.Sprintf(`Hi %s!

Your %s appointment has been rescheduled.

New date: %s
New time: %s

If this doesn't work for you, please contact us at %s.

- %s`, clientName, treatmentName, newDate, newTime, t.businessPhone, t.businessName)

	return Message{
		Text:         text,
		TemplateName: TemplateReschedule,
		Parameters: map[string]string{
			"customer_name":    clientName,
			"appointment_date": newDate,
			"appointment_time": newTime,
			"treatment_name":   treatmentName,
		},
	}
}

// Marketing renders a promotional message around a campaign-supplied body.
func (t *MessageTemplates) Marketing(clientName, customMessage string) Message {
	text := fmt.Sprintf(`Hi %s!

%s

To book, contact us at %s.

- %s`, clientName, customMessage, t.businessPhone, t.businessName)

	return Message{
		Text:         text,
		TemplateName: TemplateMarketing,
		Parameters: map[string]string{
			"customer_name": clientName,
			"message":       customMessage,
		},
	}
}
