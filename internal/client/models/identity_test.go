package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveIdentity(t *testing.T) {
	tests := []struct {
		email string
		want  Identity
	}{
		{
			email: "maria.silva@pc.gov.br",
			want: Identity{
				Name:   "maria.silva",
				Email:  "maria.silva@pc.gov.br",
				Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=maria.silva%40pc.gov.br",
			},
		},
		{
			email: "",
			want: Identity{
				Name:   "Usuário",
				Email:  "",
				Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=",
			},
		},
		{
			email: "@weird",
			want: Identity{
				Name:   "Usuário",
				Email:  "@weird",
				Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=%40weird",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveIdentity(tt.email))
			assert.Equal(t, DeriveIdentity(tt.email), DeriveIdentity(tt.email))
		})
	}
}
