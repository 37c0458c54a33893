package activities

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "salonnotify/database/repository/booking"
	"salonnotify/models"
	"salonnotify/services/templates"
	"salonnotify/services/whatsapp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"
)

type stubBookings struct {
	details    *models.BookingDetails
	detailsErr error
	end        time.Time
	endErr     error
	confirmed  []string
	reminded   []string
	stampErr   error
}

func (s *stubBookings) GetDetails(bookingID string) (*models.BookingDetails, error) {
	if s.detailsErr != nil {
		return nil, s.detailsErr
	}
	return s.details, nil
}

func (s *stubBookings) GetAppointmentEnd(bookingID string) (time.Time, error) {
	return s.end, s.endErr
}

func (s *stubBookings) MarkConfirmed(bookingID string) error {
	s.confirmed = append(s.confirmed, bookingID)
	return s.stampErr
}

func (s *stubBookings) MarkReminded(bookingID string) error {
	s.reminded = append(s.reminded, bookingID)
	return s.stampErr
}

type stubClients struct {
	canSend    bool
	canSendErr error
	eligible   []models.CampaignClient
	recency    int
}

func (s *stubClients) CanReceiveMessages(clientID string) (bool, error) {
	return s.canSend, s.canSendErr
}

func (s *stubClients) GetEligibleClients(recencyDays int) ([]models.CampaignClient, error) {
	s.recency = recencyDays
	return s.eligible, nil
}

type stubLogs struct {
	entries   []*models.NotificationLog
	insertErr error
}

func (s *stubLogs) Insert(entry *models.NotificationLog) error {
	s.entries = append(s.entries, entry)
	return s.insertErr
}

type stubProvider struct {
	result  *whatsapp.SendResult
	err     error
	calls   int
	lastTo  string
	lastMsg string
}

func (s *stubProvider) SendMessage(ctx context.Context, to, message, templateName string, parameters map[string]string) (*whatsapp.SendResult, error) {
	s.calls++
	s.lastTo = to
	s.lastMsg = message
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type fixture struct {
	bookings *stubBookings
	clients  *stubClients
	logs     *stubLogs
	provider *stubProvider
	acts     *NotificationActivities
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &stubBookings{
			details: &models.BookingDetails{
				BookingID:       "bk-100",
				ClientID:        "cl-200",
				ClientName:      "Rudo",
				ClientPhone:     "0771234567",
				AppointmentDate: "Friday, 04 September",
				AppointmentTime: "14:00",
				TreatmentName:   "Gel Manicure",
				StaffName:       "Tari",
				Status:          models.BookingStatusConfirmed,
			},
		},
		clients:  &stubClients{canSend: true},
		logs:     &stubLogs{},
		provider: &stubProvider{result: &whatsapp.SendResult{MessageID: "wamid-1"}},
	}
	f.acts = NewNotificationActivities(
		f.bookings, f.clients, f.logs, f.provider,
		templates.NewMessageTemplates("Luxe Salon", "+263771000000", "12 Baker Ave"),
		Defaults{CountryCode: "263", RecencyDays: 60, SalonLocation: "12 Baker Ave"},
		zap.NewNop(),
	)
	return f
}

func TestSendConfirmationSuccess(t *testing.T) {
	f := newFixture()

	result, err := f.acts.SendConfirmation(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.NoError(t, err)

	assert.True(t, result.Succeeded)
	assert.Equal(t, models.MessageTypeConfirmation, result.Stage)
	assert.Equal(t, "wamid-1", result.MessageID)

	assert.Equal(t, 1, f.provider.calls)
	assert.Equal(t, "+263771234567", f.provider.lastTo)

	require.Len(t, f.logs.entries, 1)
	entry := f.logs.entries[0]
	assert.Equal(t, models.NotificationStatusSent, entry.Status)
	assert.Equal(t, models.MessageTypeConfirmation, entry.MessageType)
	assert.Equal(t, "wamid-1", entry.ProviderMessageID)
	assert.NotNil(t, entry.SentAt)

	assert.Equal(t, []string{"bk-100"}, f.bookings.confirmed)
}

func TestSendConfirmationBookingNotFound(t *testing.T) {
	f := newFixture()
	f.bookings.detailsErr = bookingRepo.ErrBookingNotFound

	_, err := f.acts.SendConfirmation(context.Background(), models.BookingWorkflowInput{BookingID: "bk-missing"})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrTypeBookingNotFound, appErr.Type())
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, 0, f.provider.calls)
}

func TestSendConfirmationBlockedClientIsRejectedNotErrored(t *testing.T) {
	f := newFixture()
	f.clients.canSend = false

	result, err := f.acts.SendConfirmation(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.NoError(t, err)

	assert.False(t, result.Succeeded)
	assert.Equal(t, ReasonClientPreferences, result.Reason)
	assert.Equal(t, 0, f.provider.calls)
	assert.Empty(t, f.logs.entries)
	assert.Empty(t, f.bookings.confirmed)
}

func TestSend24hReminderSkipsInactiveBooking(t *testing.T) {
	f := newFixture()
	f.bookings.details.Status = models.BookingStatusCancelled

	result, err := f.acts.Send24hReminder(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.NoError(t, err)

	assert.False(t, result.Succeeded)
	assert.Equal(t, ReasonBookingNotActive, result.Reason)
	assert.Equal(t, 0, f.provider.calls)
}

func TestSend24hReminderStampsReminderTimestamp(t *testing.T) {
	f := newFixture()

	result, err := f.acts.Send24hReminder(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.NoError(t, err)

	assert.True(t, result.Succeeded)
	assert.Equal(t, []string{"bk-100"}, f.bookings.reminded)
}

func TestSendAftercareRequiresCompletedAppointment(t *testing.T) {
	f := newFixture()
	f.bookings.details.Status = models.BookingStatusConfirmed

	result, err := f.acts.SendAftercare(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.NoError(t, err)

	assert.False(t, result.Succeeded)
	assert.Equal(t, ReasonAppointmentNotCompleted, result.Reason)
	assert.Equal(t, 0, f.provider.calls)
}

func TestSendAftercareCompletedBookingSends(t *testing.T) {
	f := newFixture()
	f.bookings.details.Status = models.BookingStatusCompleted

	result, err := f.acts.SendAftercare(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.NoError(t, err)

	assert.True(t, result.Succeeded)
	assert.Equal(t, models.MessageTypeAftercare, result.Stage)
}

func TestProviderFaultReturnsErrorAndLogsFailure(t *testing.T) {
	f := newFixture()
	f.provider.err = errors.New("chakra API returned HTTP 503")

	_, err := f.acts.SendConfirmation(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.Error(t, err)

	require.Len(t, f.logs.entries, 1)
	entry := f.logs.entries[0]
	assert.Equal(t, models.NotificationStatusFailed, entry.Status)
	assert.Equal(t, "chakra API returned HTTP 503", entry.ErrorMessage)
	assert.Nil(t, entry.SentAt)

	assert.Empty(t, f.bookings.confirmed)
}

func TestLogWriteFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.logs.insertErr = errors.New("mongo write timeout")

	result, err := f.acts.SendConfirmation(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
}

func TestTimestampStampFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.bookings.stampErr = errors.New("mongo write timeout")

	result, err := f.acts.SendConfirmation(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
}

func TestEmptyPhoneIsInvalidInput(t *testing.T) {
	f := newFixture()
	f.bookings.details.ClientPhone = ""

	_, err := f.acts.SendConfirmation(context.Background(), models.BookingWorkflowInput{BookingID: "bk-100"})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrTypeInvalidInput, appErr.Type())
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, 0, f.provider.calls)
}

func TestSendCancellationIgnoresBookingStatus(t *testing.T) {
	f := newFixture()
	f.bookings.details.Status = models.BookingStatusCancelled

	result, err := f.acts.SendCancellation(context.Background(), models.CancellationInput{
		BookingID:          "bk-100",
		CancellationReason: "staff unavailable",
	})
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, models.MessageTypeCancellation, result.Stage)
}

func TestGetAppointmentEndTime(t *testing.T) {
	f := newFixture()
	end := time.Date(2026, 9, 4, 15, 0, 0, 0, time.UTC)
	f.bookings.end = end

	got, err := f.acts.GetAppointmentEndTime(context.Background(), "bk-100")
	require.NoError(t, err)
	assert.Equal(t, end, got)
}

func TestGetAppointmentEndTimeMissingBooking(t *testing.T) {
	f := newFixture()
	f.bookings.endErr = bookingRepo.ErrBookingNotFound

	_, err := f.acts.GetAppointmentEndTime(context.Background(), "bk-missing")
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrTypeBookingNotFound, appErr.Type())
}

func TestGetEligibleClientsUsesConfiguredRecency(t *testing.T) {
	f := newFixture()
	f.clients.eligible = []models.CampaignClient{
		{ID: "cl-1", Name: "Rudo", Phone: "+263771234567"},
	}

	clients, err := f.acts.GetEligibleClients(context.Background(), "camp-7")
	require.NoError(t, err)
	assert.Len(t, clients, 1)
	assert.Equal(t, 60, f.clients.recency)
}

func TestSendMarketingMessage(t *testing.T) {
	f := newFixture()

	result, err := f.acts.SendMarketingMessage(context.Background(), models.MarketingSendInput{
		CampaignID:      "camp-7",
		ClientID:        "cl-200",
		Name:            "Rudo",
		Phone:           "0771234567",
		MessageTemplate: "August gel special",
	})
	require.NoError(t, err)

	assert.True(t, result.Succeeded)
	assert.Equal(t, models.MessageTypeMarketing, result.Stage)
	assert.Equal(t, "+263771234567", f.provider.lastTo)
	assert.Contains(t, f.provider.lastMsg, "August gel special")

	require.Len(t, f.logs.entries, 1)
	assert.Empty(t, f.logs.entries[0].BookingID)
	assert.Equal(t, models.MessageTypeMarketing, f.logs.entries[0].MessageType)
}

func TestSendMarketingMessageProviderFault(t *testing.T) {
	f := newFixture()
	f.provider.err = errors.New("chakra request failed: timeout")

	_, err := f.acts.SendMarketingMessage(context.Background(), models.MarketingSendInput{
		CampaignID: "camp-7",
		ClientID:   "cl-200",
		Name:       "Rudo",
		Phone:      "0771234567",
	})
	require.Error(t, err)

	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, models.NotificationStatusFailed, f.logs.entries[0].Status)
}
