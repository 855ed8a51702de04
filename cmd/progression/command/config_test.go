package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-progression/internal/content"
	"github.com/pixil98/go-progression/internal/progression"
	"github.com/pixil98/go-testutil"
)

func intPtr(v int) *int { return &v }

func writeAsset(t *testing.T, dir, id, spec string) {
	t.Helper()
	body := `{"version":1,"id":"` + id + `","spec":` + spec + `}`
	if err := os.WriteFile(filepath.Join(dir, id+".json"), []byte(body), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", id, err)
	}
}

func contentConfig(t *testing.T) ContentConfig {
	t.Helper()
	items, blocks, units, zones := t.TempDir(), t.TempDir(), t.TempDir(), t.TempDir()

	writeAsset(t, items, "copper", `{"hardness":1}`)
	writeAsset(t, items, "lead", `{"hardness":1}`)
	writeAsset(t, blocks, "conveyor", `{"size":1}`)
	writeAsset(t, zones, "ground-zero", `{"condition_wave":10,"launch_cost":[{"item":"copper","amount":50}]}`)

	return ContentConfig{
		Items:  AssetConfig[*content.Item]{Path: items},
		Blocks: AssetConfig[*content.Block]{Path: blocks},
		Units:  AssetConfig[*content.Unit]{Path: units},
		Zones:  AssetConfig[*content.Zone]{Path: zones},
	}
}

func validConfig(t *testing.T) *Config {
	return &Config{
		TickInterval: "5s",
		Settings:     SettingsConfig{Backend: "memory"},
		Content:      contentConfig(t),
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(c *Config)
		expErr string
	}{
		"valid": {},
		"bad tick": {
			mutate: func(c *Config) { c.TickInterval = "soon" },
			expErr: "parsing tick_interval",
		},
		"tick too short": {
			mutate: func(c *Config) { c.TickInterval = "100ms" },
			expErr: "at least 1 second",
		},
		"unknown backend": {
			mutate: func(c *Config) { c.Settings.Backend = "redis" },
			expErr: `unknown backend "redis"`,
		},
		"file backend without path": {
			mutate: func(c *Config) { c.Settings.Backend = "file" },
			expErr: "path is required for the file backend",
		},
		"gdata backend without app": {
			mutate: func(c *Config) { c.Settings.Backend = "gdata" },
			expErr: "app_name is required",
		},
		"unknown format": {
			mutate: func(c *Config) { c.Settings.Format = "toml" },
			expErr: `unknown format "toml"`,
		},
		"missing content path": {
			mutate: func(c *Config) { c.Content.Zones.Path = "" },
			expErr: "zones: path is required",
		},
		"negative starter amount": {
			mutate: func(c *Config) { c.Progression.StarterAmount = intPtr(-1) },
			expErr: "starter_amount must not be negative",
		},
		"listener without port": {
			mutate: func(c *Config) { c.Listeners = []ListenerConfig{{Protocol: ListenerTypeTelnet}} },
			expErr: "listener 0",
		},
		"host key on telnet": {
			mutate: func(c *Config) {
				c.Listeners = []ListenerConfig{{Protocol: ListenerTypeTelnet, Port: 4000, HostKeyPath: "key"}}
			},
			expErr: "host_key_path is only valid for ssh",
		},
		"nats bad timeout": {
			mutate: func(c *Config) { c.Nats = &NatsConfig{StartTimeout: "forever"} },
			expErr: "parsing start_timeout",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig(t)
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			err := cfg.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_UnmarshalJSON(t *testing.T) {
	raw := `{
		"tick_interval": "2s",
		"listeners": [{"protocol": "ssh", "port": 2222}, {"protocol": "telnet", "port": 4000, "host": "0.0.0.0"}],
		"settings": {"backend": "sqlite", "path": "/var/lib/progression/settings.db", "format": "yaml"},
		"progression": {"starter_item": "lead", "starter_amount": 10},
		"nats": {"port": 4222}
	}`

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "listeners", len(cfg.Listeners), 2)
	testutil.AssertEqual(t, "ssh", cfg.Listeners[0].Protocol, ListenerTypeSSH)
	testutil.AssertEqual(t, "default host", cfg.Listeners[0].host(), "127.0.0.1")
	testutil.AssertEqual(t, "telnet host", cfg.Listeners[1].host(), "0.0.0.0")
	testutil.AssertEqual(t, "backend", cfg.Settings.Backend, "sqlite")
	testutil.AssertEqual(t, "starter", cfg.Progression.StarterItem, "lead")
	testutil.AssertEqual(t, "starter amount", *cfg.Progression.StarterAmount, 10)
	testutil.AssertEqual(t, "nats port", cfg.Nats.Port, 4222)
}

func TestListenerType_UnmarshalText(t *testing.T) {
	var lt ListenerType
	err := lt.UnmarshalText([]byte("gopher"))
	testutil.AssertErrorContains(t, err, "unknown listener type")
}

func TestSettingsConfig_BuildSettings(t *testing.T) {
	tests := map[string]struct {
		cfg SettingsConfig
	}{
		"memory": {cfg: SettingsConfig{Backend: "memory"}},
		"file":   {cfg: SettingsConfig{Backend: "file", Path: filepath.Join(t.TempDir(), "settings.json")}},
		"sqlite": {cfg: SettingsConfig{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "settings.db"), Format: "yaml"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := tt.cfg.BuildSettings()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if err := s.PutObject("unlocks", progression.Unlocks{content.TypeZone: {"ground-zero"}}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := s.Save(); err != nil {
				t.Fatalf("unexpected save error: %v", err)
			}

			if tt.cfg.Backend == "memory" {
				return
			}

			reopened, err := tt.cfg.BuildSettings()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got progression.Unlocks
			found, err := reopened.GetObject("unlocks", &got)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "found", found, true)
			testutil.AssertEqual(t, "unlocks", got, progression.Unlocks{content.TypeZone: {"ground-zero"}})
		})
	}
}

func TestContentConfig_BuildRegistry(t *testing.T) {
	cc := contentConfig(t)

	reg, err := cc.BuildRegistry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "items", len(reg.ItemList()), 2)
	zone := reg.Zone("ground-zero")
	if zone == nil {
		t.Fatal("expected ground-zero zone")
	}
	cost := zone.Cost()
	testutil.AssertEqual(t, "cost item", cost[0].Item.Name(), "copper")
	testutil.AssertEqual(t, "cost amount", cost[0].Amount, 50)
}

func TestContentConfig_BuildRegistryMissingReference(t *testing.T) {
	cc := contentConfig(t)
	writeAsset(t, cc.Zones.Path, "frozen-forest", `{"condition_wave":15,"launch_cost":[{"item":"titanium","amount":5}]}`)

	_, err := cc.BuildRegistry()
	testutil.AssertErrorContains(t, err, "resolving references")
}

func TestProgressionConfig_StarterKit(t *testing.T) {
	tests := map[string]struct {
		cfg       ProgressionConfig
		expCopper int
		expLead   int
	}{
		"defaults": {
			cfg:       ProgressionConfig{},
			expCopper: progression.DefaultStarterAmount,
		},
		"amount only": {
			cfg:       ProgressionConfig{StarterAmount: intPtr(40)},
			expCopper: 40,
		},
		"custom item": {
			cfg:     ProgressionConfig{StarterItem: "lead", StarterAmount: intPtr(25)},
			expLead: 25,
		},
		"explicit zero disables": {
			cfg: ProgressionConfig{StarterAmount: intPtr(0)},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cc := contentConfig(t)
			reg, err := cc.BuildRegistry()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			st, err := (&SettingsConfig{Backend: "memory"}).BuildSettings()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			store := progression.NewStore(st, reg, nil, nil, tt.cfg.options()...)
			if err := store.Load(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "copper", store.Items()["copper"], tt.expCopper)
			testutil.AssertEqual(t, "lead", store.Items()["lead"], tt.expLead)
		})
	}
}

func TestBuildWorkers(t *testing.T) {
	cfg := validConfig(t)
	cfg.Progression = ProgressionConfig{StarterItem: "lead", StarterAmount: intPtr(25)}

	workers, err := BuildWorkers(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"driver", "listeners"} {
		if _, ok := workers[name]; !ok {
			t.Errorf("expected worker %q", name)
		}
	}
	if _, ok := workers["nats"]; ok {
		t.Errorf("nats worker built without nats config")
	}
}

func TestBuildWorkers_Errors(t *testing.T) {
	tests := map[string]struct {
		config any
		expErr string
	}{
		"wrong type": {
			config: struct{}{},
			expErr: "unable to cast config",
		},
		"invalid": {
			config: &Config{TickInterval: "1s", Settings: SettingsConfig{Backend: "memory"}},
			expErr: "validating config",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := BuildWorkers(tt.config)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}
