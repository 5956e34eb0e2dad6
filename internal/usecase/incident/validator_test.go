package incident

import (
	"errors"
	"strings"
	"testing"

	appErrors "cargo-inspection-dashboard/pkg/errors"
)

func TestValidateSubmissionReview(t *testing.T) {
	img := Image{Name: "evidence.jpg", Data: strings.NewReader("jpeg")}

	tests := []struct {
		name    string
		sub     Submission
		wantErr error
	}{
		{
			name:    "image only",
			sub:     Submission{Mode: ModeReview, Images: []Image{img}},
			wantErr: nil,
		},
		{
			name:    "notes only",
			sub:     Submission{Mode: ModeReview, Notes: "seal broken on arrival"},
			wantErr: nil,
		},
		{
			name:    "image and notes",
			sub:     Submission{Mode: ModeReview, Notes: "ok", Images: []Image{img}},
			wantErr: nil,
		},
		{
			name:    "nothing attached",
			sub:     Submission{Mode: ModeReview},
			wantErr: appErrors.ErrReviewEmpty,
		},
		{
			name:    "whitespace notes do not count",
			sub:     Submission{Mode: ModeReview, Notes: "   \t"},
			wantErr: appErrors.ErrReviewEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.sub)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSubmission() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmissionUpdate(t *testing.T) {
	img := Image{Name: "evidence.jpg", Data: strings.NewReader("jpeg")}

	tests := []struct {
		name    string
		sub     Submission
		wantErr error
	}{
		{
			name:    "empty error type is invalid",
			sub:     Submission{Mode: ModeUpdate},
			wantErr: appErrors.ErrErrorTypeRequired,
		},
		{
			name:    "plain error type needs nothing else",
			sub:     Submission{Mode: ModeUpdate, ErrorType: "False Positive"},
			wantErr: nil,
		},
		{
			name: "update classification complete",
			sub: Submission{
				Mode:       ModeUpdate,
				ErrorType:  ErrorTypeUpdateClassification,
				BagType:    "Carton",
				DamageType: "Wet_Carton",
				Notes:      "was misread as break",
				Images:     []Image{img},
			},
			wantErr: nil,
		},
		{
			name: "update classification missing bag type",
			sub: Submission{
				Mode:       ModeUpdate,
				ErrorType:  ErrorTypeUpdateClassification,
				DamageType: "Wet_Carton",
				Notes:      "n",
				Images:     []Image{img},
			},
			wantErr: appErrors.ErrUpdateIncomplete,
		},
		{
			name: "update classification missing image",
			sub: Submission{
				Mode:       ModeUpdate,
				ErrorType:  ErrorTypeUpdateClassification,
				BagType:    "Carton",
				DamageType: "Wet_Carton",
				Notes:      "n",
			},
			wantErr: appErrors.ErrUpdateIncomplete,
		},
		{
			name: "update classification blank notes",
			sub: Submission{
				Mode:       ModeUpdate,
				ErrorType:  ErrorTypeUpdateClassification,
				BagType:    "Carton",
				DamageType: "Wet_Carton",
				Notes:      "  ",
				Images:     []Image{img},
			},
			wantErr: appErrors.ErrUpdateIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.sub)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSubmission() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanSubmit(t *testing.T) {
	if CanSubmit(Submission{Mode: ModeReview}) {
		t.Error("empty review must not be submittable")
	}
	if !CanSubmit(Submission{Mode: ModeReview, Notes: "noted"}) {
		t.Error("review with notes must be submittable")
	}
	if CanSubmit(Submission{Mode: "purge"}) {
		t.Error("unknown mode must not be submittable")
	}
}
