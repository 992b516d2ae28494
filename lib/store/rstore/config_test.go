package rstore

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig()
	if len(conf.Endpoints) != 1 || conf.Endpoints[0] != "localhost:6379" {
		t.Errorf("unexpected default endpoints: %v", conf.Endpoints)
	}
	if conf.TimeoutSecond <= 0 || conf.PoolSize <= 0 {
		t.Errorf("defaults must be positive, got timeout=%d pool=%d", conf.TimeoutSecond, conf.PoolSize)
	}
}

func TestConfigStringMasksPassword(t *testing.T) {
	conf := DefaultConfig()
	conf.Password = "secret"

	s := conf.String()
	if strings.Contains(s, "secret") {
		t.Error("the password must never appear in the printed configuration")
	}
	if !strings.Contains(s, "localhost:6379") {
		t.Error("the endpoints must appear in the printed configuration")
	}
}
