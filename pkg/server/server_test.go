package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	handler := http.NotFoundHandler()

	srv := New(Config{}, handler)
	assert.Equal(t, ":8080", srv.Addr)
	assert.NotNil(t, srv.Handler)

	srv = New(Config{Port: 9090, BindAddress: "*"}, handler)
	assert.Equal(t, ":9090", srv.Addr)

	srv = New(Config{Port: 80, BindAddress: "127.0.0.1"}, handler)
	assert.Equal(t, "127.0.0.1:80", srv.Addr)
}
