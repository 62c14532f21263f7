package cep

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(srv.URL, nil, 0, nil)
	return c, srv
}

func TestLookupSuccess(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/01001000/json/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"cep":"01001-000","logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`)
	})
	defer srv.Close()

	addr, err := c.Lookup(context.Background(), "01001000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Street != "Praça da Sé" || addr.City != "São Paulo" || addr.State != "SP" {
		t.Fatalf("unexpected address: %+v", addr)
	}
	if addr.CEP != "01001000" {
		t.Fatalf("cep = %q, want the queried code", addr.CEP)
	}
}

func TestLookupRejectsMalformedCode(t *testing.T) {
	c := NewClient("http://unused", nil, 0, nil)
	for _, code := range []string{"", "1234567", "123456789", "01001-00", "abcdefgh"} {
		if _, err := c.Lookup(context.Background(), code); !errors.Is(err, ErrInvalidCEP) {
			t.Fatalf("code %q: got %v, want ErrInvalidCEP", code, err)
		}
	}
}

func TestLookupNotFound(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"erro": true}`)
	})
	defer srv.Close()

	if _, err := c.Lookup(context.Background(), "99999999"); !errors.Is(err, ErrCEPNotFound) {
		t.Fatalf("got %v, want ErrCEPNotFound", err)
	}
}

func TestLookupUpstreamError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	if _, err := c.Lookup(context.Background(), "01001000"); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}
