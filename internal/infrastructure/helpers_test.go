package infrastructure

import (
	"testing"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/stretchr/testify/assert"
)

func TestGetExtensionFromMIME(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "text/html", want: "html"},
		{in: "text/html; charset=utf-8", want: "html"},
		{in: "text/plain", want: "txt"},
		{in: "application/json", want: "json"},
		{in: "image/png", want: "bin", wantErr: true},
		{in: "", want: "bin", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := GetExtensionFromMIME(tc.in)
			assert.Equal(t, tc.want, got)
			if tc.wantErr {
				assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
