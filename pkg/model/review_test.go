package model

import "testing"

func TestReview_AuthorRef(t *testing.T) {
	tests := []struct {
		name       string
		targetType TargetType
		wantType   string
	}{
		{"guest review is written by the host", TargetGuest, TypeHost},
		{"host review is written by a guest", TargetHost, TypeGuest},
		{"listing review is written by a guest", TargetListing, TypeGuest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review := &Review{
				TargetType: tt.targetType,
				AuthorID:   "user-42",
			}

			ref := review.AuthorRef()
			if ref.TypeName != tt.wantType {
				t.Errorf("expected author type %s, got %s", tt.wantType, ref.TypeName)
			}
			if ref.ID != "user-42" {
				t.Errorf("expected author id user-42, got %s", ref.ID)
			}
		})
	}
}

func TestBooking_Cancellable(t *testing.T) {
	for status, want := range map[BookingStatus]bool{
		StatusUpcoming:  true,
		StatusCurrent:   false,
		StatusCompleted: false,
		StatusCancelled: false,
	} {
		b := &Booking{Status: status}
		if b.Cancellable() != want {
			t.Errorf("status %s: expected Cancellable %v", status, want)
		}
	}
}
