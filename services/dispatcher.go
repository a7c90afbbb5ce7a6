// services/dispatcher.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"naver-booking-notifier/config"
	"naver-booking-notifier/models"
)

// Alimtalk template variables and the reminder button. Payload shapes live
// here as named constants instead of being rebuilt at every call site.
const (
	varCustomerName = "#{예약자명}"
	varBookingTime  = "#{예약일시}"

	reminderButtonName = "예약 확인"
	reminderLinkMo     = "https://m.booking.naver.com/my/bookings"
	reminderLinkPc     = "https://booking.naver.com/my/bookings"
)

// Dispatcher drives both delivery paths for one booking. Failures are
// reported as data; nothing here aborts a batch.
type Dispatcher struct {
	cfg    *config.Config
	client *SolapiClient
	clock  Clock
}

func NewDispatcher(cfg *config.Config, client *SolapiClient, clock Clock) *Dispatcher {
	return &Dispatcher{cfg: cfg, client: client, clock: clock}
}

// Dispatch attempts the immediate confirmation and the scheduled reminder.
// Both paths run regardless of each other's result.
func (d *Dispatcher) Dispatch(ctx context.Context, b models.BookingRecord) models.DispatchOutcome {
	return models.DispatchOutcome{
		BookingID:    b.BookingID,
		CustomerName: b.CustomerName,
		PhoneNumber:  b.PhoneNumber,
		Immediate:    d.SendImmediate(ctx, b.PhoneNumber, b.CustomerName, b.BookingTime),
		Reminder:     d.ScheduleReminder(ctx, b.PhoneNumber, b.CustomerName, b.BookingTime),
	}
}

// ImmediateMessage builds the confirmation alimtalk payload for preview and
// sending.
func (d *Dispatcher) ImmediateMessage(phone, name, bookingTime string) Message {
	return Message{
		To:   phone,
		From: d.cfg.SolapiSender,
		KakaoOptions: &KakaoOptions{
			PfID:       d.cfg.SolapiPfID,
			TemplateID: d.cfg.SolapiTemplateID,
			Variables: map[string]string{
				varCustomerName: name,
				varBookingTime:  FormatBookingDate(bookingTime, d.clock.Now()),
			},
		},
	}
}

func (d *Dispatcher) reminderMessage(phone, name, bookingTime string) Message {
	return Message{
		To:   phone,
		From: d.cfg.SolapiSender,
		KakaoOptions: &KakaoOptions{
			PfID:       d.cfg.SolapiPfID,
			TemplateID: d.cfg.SolapiReminderTemplateID,
			Variables: map[string]string{
				varCustomerName: name,
				varBookingTime:  FormatBookingDate(bookingTime, d.clock.Now()),
			},
			Buttons: []KakaoButton{{
				ButtonType: "WL",
				ButtonName: reminderButtonName,
				LinkMo:     reminderLinkMo,
				LinkPc:     reminderLinkPc,
			}},
		},
	}
}

// SendImmediate posts one confirmation message. Non-200 and transport
// failures both come back as a failed result with the provider detail.
func (d *Dispatcher) SendImmediate(ctx context.Context, phone, name, bookingTime string) models.SendResult {
	detail, err := d.client.SendMessage(ctx, d.ImmediateMessage(phone, name, bookingTime))
	if err != nil {
		var pe *models.ProviderError
		if errors.As(err, &pe) {
			config.Logger().Warn("immediate send rejected",
				zap.String("phone", phone), zap.Int("status", pe.Status))
			return models.SendResult{
				Success: false,
				Message: fmt.Sprintf("발송 실패: %d", pe.Status),
				Detail:  json.RawMessage(pe.Body),
			}
		}
		config.Logger().Warn("immediate send failed", zap.String("phone", phone), zap.Error(err))
		return models.SendResult{Success: false, Message: "발송 오류: " + err.Error()}
	}
	return models.SendResult{Success: true, Message: "발송 성공", Detail: detail}
}

// ScheduleReminder runs the three-step group workflow: create group, attach
// the reminder message, register the schedule. Each step signs its own
// credential. The first failing step aborts the rest; a partially created
// group stays on the provider side and is reported via GroupID.
func (d *Dispatcher) ScheduleReminder(ctx context.Context, phone, name, bookingTime string) models.ReminderResult {
	now := d.clock.Now()

	appointment, err := ResolveAppointment(bookingTime, now)
	if err != nil {
		return models.ReminderResult{Success: false, Message: "예약 시간 해석 실패: " + err.Error()}
	}

	win := ReminderWindow(appointment, d.cfg.ReminderLead, d.cfg.MinScheduleMargin, now)
	if !win.Feasible {
		return models.ReminderResult{
			Success: false,
			Message: fmt.Sprintf("리마인더 시간이 너무 가깝습니다 (남은 시간 %d초, 최소 %d초)",
				int(win.Remaining.Seconds()), int(d.cfg.MinScheduleMargin.Seconds())),
		}
	}

	groupID, err := d.client.CreateGroup(ctx)
	if err != nil {
		return models.ReminderResult{Success: false, Message: "그룹 생성 실패: " + err.Error()}
	}

	if err := d.client.AttachGroupMessages(ctx, groupID, []Message{d.reminderMessage(phone, name, bookingTime)}); err != nil {
		return models.ReminderResult{
			Success: false,
			Message: "메시지 등록 실패: " + err.Error(),
			GroupID: groupID,
		}
	}

	if err := d.client.ScheduleGroup(ctx, groupID, win.ScheduledAt); err != nil {
		return models.ReminderResult{
			Success: false,
			Message: "예약 발송 등록 실패: " + err.Error(),
			GroupID: groupID,
		}
	}

	config.Logger().Info("reminder scheduled",
		zap.String("phone", phone),
		zap.String("group_id", groupID),
		zap.Time("scheduled_at", win.ScheduledAt))
	return models.ReminderResult{Success: true, Message: "리마인더 등록 성공", GroupID: groupID}
}
