package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPorts(t *testing.T) {
	chat := &mockChatService{}
	catalog := &mockCatalogService{}
	upload := &mockUploadService{}

	ports := NewPorts(chat, catalog, upload)

	require.NotNil(t, ports)
	assert.Equal(t, chat, ports.Chat)
	assert.Equal(t, catalog, ports.Catalog)
	assert.Equal(t, upload, ports.Upload)
	assert.Nil(t, ports.Models)
	assert.Nil(t, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name: "all required ports set",
			ports: &Ports{
				Chat:    &mockChatService{},
				Catalog: &mockCatalogService{},
				Upload:  &mockUploadService{},
			},
			wantErr: nil,
		},
		{
			name: "missing chat service",
			ports: &Ports{
				Catalog: &mockCatalogService{},
				Upload:  &mockUploadService{},
			},
			wantErr: ErrMissingChatService,
		},
		{
			name: "missing catalog service",
			ports: &Ports{
				Chat:   &mockChatService{},
				Upload: &mockUploadService{},
			},
			wantErr: ErrMissingCatalogService,
		},
		{
			name: "missing upload service",
			ports: &Ports{
				Chat:    &mockChatService{},
				Catalog: &mockCatalogService{},
			},
			wantErr: ErrMissingUploadService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPorts_Validate_OptionalPortsNotRequired(t *testing.T) {
	ports := &Ports{
		Chat:    &mockChatService{},
		Catalog: &mockCatalogService{},
		Upload:  &mockUploadService{},
		// Models and Settings intentionally nil
	}

	assert.NoError(t, ports.Validate())
}
