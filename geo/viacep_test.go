package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testClient(handler http.HandlerFunc) (*ViaCEPClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewViaCEPClient()
	client.baseURL = server.URL
	return client, server
}

func TestViaCEP_Lookup(t *testing.T) {
	client, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01001000/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"logradouro":"Praca da Se","bairro":"Se","localidade":"Sao Paulo","uf":"SP"}`))
	})
	defer server.Close()

	addr, err := client.Lookup(context.Background(), "01001000")
	assert.NoError(t, err)
	assert.Equal(t, Address{
		Street:       "Praca da Se",
		Neighborhood: "Se",
		City:         "Sao Paulo",
		State:        "SP",
	}, addr)
}

func TestViaCEP_UnknownCEP(t *testing.T) {
	// ViaCEP answers 200 with an erro flag for unknown codes.
	client, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), "99999999")
	assert.Error(t, err)
}

func TestViaCEP_RejectsMalformedCEP(t *testing.T) {
	client := NewViaCEPClient()

	for _, cep := range []string{"", "123", "abcdefgh", "01001-000"} {
		_, err := client.Lookup(context.Background(), cep)
		assert.Error(t, err, cep)
	}
}

func TestViaCEP_UpstreamError(t *testing.T) {
	client, server := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := client.Lookup(context.Background(), "01001000")
	assert.Error(t, err)
}
