package appointment

import (
	"testing"
	"time"

	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
	"github.com/davifernandodias/dsin-assessment-tech/internal/models"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestMoreThanTwoDaysAway_Boundary(t *testing.T) {
	cases := []struct {
		name        string
		scheduledAt time.Time
		want        bool
	}{
		{"exactly 48h is too close", now.Add(48 * time.Hour), false},
		{"48h + 1ms is allowed", now.Add(48*time.Hour + time.Millisecond), true},
		{"one day away is too close", now.Add(24 * time.Hour), false},
		{"in the past is too close", now.Add(-time.Hour), false},
		{"one week away is allowed", now.Add(7 * 24 * time.Hour), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MoreThanTwoDaysAway(tc.scheduledAt, now); got != tc.want {
				t.Errorf("MoreThanTwoDaysAway(%v) = %v, want %v", tc.scheduledAt, got, tc.want)
			}
		})
	}
}

func TestAuthorizeChange(t *testing.T) {
	admin := &models.User{ID: "u-admin", Role: "Admin"}
	owner := &models.User{ID: "u-owner", Role: "Client"}
	other := &models.User{ID: "u-other", Role: "Client"}
	stylist := &models.User{ID: "u-stylist", Role: "Stylist"}
	broken := &models.User{ID: "u-broken", Role: "Superuser"}

	farAway := &models.Appointment{ID: "a1", ClientID: owner.ID, ScheduledAt: now.Add(72 * time.Hour)}
	tooClose := &models.Appointment{ID: "a2", ClientID: owner.ID, ScheduledAt: now.Add(24 * time.Hour)}

	cases := []struct {
		name     string
		actor    *models.User
		ap       *models.Appointment
		wantCode string
	}{
		{"admin bypasses threshold", admin, tooClose, ""},
		{"admin bypasses ownership", admin, farAway, ""},
		{"owner outside window allowed", owner, farAway, ""},
		{"owner inside window rejected", owner, tooClose, "too_close_to_modify"},
		{"non-owner rejected even far away", other, farAway, "not_appointment_owner"},
		{"stylist is not the client", stylist, farAway, "not_appointment_owner"},
		{"unknown role never passes", broken, farAway, "invalid_role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeChange(tc.actor, tc.ap, now)

			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}

			if !httperr.Is(err, tc.wantCode) {
				t.Fatalf("expected code %q, got %v", tc.wantCode, err)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusFinished, StatusCanceled} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}

	if Status("scheduled").Valid() {
		t.Error("unknown status should not be valid")
	}

	if InitialStatus() != StatusPending {
		t.Errorf("initial status = %q, want pending", InitialStatus())
	}
}
