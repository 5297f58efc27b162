package envstruct_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/noble-hunt/AXLE-sub000/internal/envstruct"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
}

func TestPopulate(t *testing.T) {
	t.Parallel()

	type config struct {
		Addr    string `env:"APP_ADDR" envDefault:"localhost:8080"`
		DBURL   string `env:"APP_DB_URL"`
		Debug   bool   `env:"APP_DEBUG" envDefault:"false"`
		Retries int    `env:"APP_RETRIES" envDefault:"3"`
	}

	tests := []struct {
		name string
		env  map[string]string
		want config
	}{
		{
			name: "explicit values win",
			env: map[string]string{
				"APP_ADDR":    ":4000",
				"APP_DB_URL":  "app.sqlite3",
				"APP_DEBUG":   "true",
				"APP_RETRIES": "7",
			},
			want: config{Addr: ":4000", DBURL: "app.sqlite3", Debug: true, Retries: 7},
		},
		{
			name: "defaults fill the gaps",
			env:  map[string]string{"APP_DB_URL": "app.sqlite3"},
			want: config{Addr: "localhost:8080", DBURL: "app.sqlite3", Debug: false, Retries: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got config
			if err := envstruct.Populate(&got, lookupFrom(tt.env)); err != nil {
				t.Fatalf("populate: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPopulate_missingRequiredVariable(t *testing.T) {
	t.Parallel()

	type config struct {
		DBURL string `env:"APP_DB_URL"`
	}

	var got config
	err := envstruct.Populate(&got, lookupFrom(nil))
	if !errors.Is(err, envstruct.ErrEnvNotSet) {
		t.Errorf("error = %v, want ErrEnvNotSet", err)
	}
}

func TestPopulate_reportsAllErrors(t *testing.T) {
	t.Parallel()

	type config struct {
		First  string `env:"APP_FIRST"`
		Second string `env:"APP_SECOND"`
	}

	var got config
	err := envstruct.Populate(&got, lookupFrom(nil))
	if err == nil {
		t.Fatal("expected errors for two missing variables")
	}
	for _, name := range []string{"APP_FIRST", "APP_SECOND"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("joined error does not mention %s: %v", name, err)
		}
	}
}

func TestPopulate_invalidInt(t *testing.T) {
	t.Parallel()

	type config struct {
		Retries int `env:"APP_RETRIES"`
	}

	var got config
	err := envstruct.Populate(&got, lookupFrom(map[string]string{"APP_RETRIES": "many"}))
	if !errors.Is(err, envstruct.ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
}

func TestPopulate_rejectsNonPointer(t *testing.T) {
	t.Parallel()

	type config struct {
		Addr string `env:"APP_ADDR"`
	}

	if err := envstruct.Populate(config{}, lookupFrom(nil)); !errors.Is(err, envstruct.ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
}

func TestPopulate_untaggedFieldsIgnored(t *testing.T) {
	t.Parallel()

	type config struct {
		Addr     string `env:"APP_ADDR" envDefault:":8080"`
		Internal string
	}

	var got config
	if err := envstruct.Populate(&got, lookupFrom(nil)); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if got.Internal != "" {
		t.Errorf("untagged field was populated: %q", got.Internal)
	}
}
