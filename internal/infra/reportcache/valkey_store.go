package reportcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/weathermate/weather-mate/internal/domain/weather"
)

// ValkeyStore caches rendered weather reports in a Valkey-compatible
// database so a fleet of instances shares one upstream request budget.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "report"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) GetReport(ctx context.Context, key string) (weather.Report, bool, error) {
	if key == "" {
		return weather.Report{}, false, nil
	}
	cmd := s.client.B().Get().Key(s.reportKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return weather.Report{}, false, nil
		}
		return weather.Report{}, false, err
	}
	var report weather.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return weather.Report{}, false, err
	}
	return report, true, nil
}

func (s *ValkeyStore) SaveReport(ctx context.Context, key string, report weather.Report, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.reportKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) reportKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

var _ weather.ReportStore = (*ValkeyStore)(nil)
