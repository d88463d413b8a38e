package grants

import (
	"testing"

	"github.com/google/uuid"
)

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestGrantOrigin(t *testing.T) {
	imaging := ptr(uuid.New())
	blood := ptr(uuid.New())
	user := ptr(uuid.New())

	tests := []struct {
		name  string
		grant Grant
		want  Origin
		ok    bool
	}{
		{"imaging request", Grant{ImagingRequestID: imaging}, OriginImaging, true},
		{"blood test request", Grant{BloodTestRequestID: blood}, OriginBloodTest, true},
		{"manual release", Grant{ReleasedToUserID: user, ReleasedByID: user}, OriginManual, true},
		{"no origin", Grant{}, "", false},
		{"two origins", Grant{ImagingRequestID: imaging, BloodTestRequestID: blood}, "", false},
		{"all origins", Grant{ImagingRequestID: imaging, BloodTestRequestID: blood, ReleasedToUserID: user}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.grant.Origin()
			if ok != tt.ok {
				t.Fatalf("Origin() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Origin() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGrantValidate(t *testing.T) {
	fileID := uuid.New()
	imaging := ptr(uuid.New())

	tests := []struct {
		name    string
		grant   Grant
		wantErr bool
	}{
		{
			name:  "valid imaging grant",
			grant: Grant{ID: uuid.New(), FileID: fileID, PageRange: "1-3", ImagingRequestID: imaging},
		},
		{
			name:  "valid unrestricted manual grant",
			grant: Grant{ID: uuid.New(), FileID: fileID, ReleasedToUserID: ptr(uuid.New()), ReleasedByID: ptr(uuid.New())},
		},
		{
			name:    "missing file id",
			grant:   Grant{ID: uuid.New(), ImagingRequestID: imaging},
			wantErr: true,
		},
		{
			name:    "unparseable page range",
			grant:   Grant{ID: uuid.New(), FileID: fileID, PageRange: "1-x", ImagingRequestID: imaging},
			wantErr: true,
		},
		{
			name:    "no origin",
			grant:   Grant{ID: uuid.New(), FileID: fileID, PageRange: "1-3"},
			wantErr: true,
		},
		{
			name: "conflicting origins",
			grant: Grant{
				ID: uuid.New(), FileID: fileID,
				ImagingRequestID: imaging, ReleasedToUserID: ptr(uuid.New()),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grant.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
