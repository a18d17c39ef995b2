package announce

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hashicorp/consul-announce/types"
)

// servicesConfig is the shape of the file passed via -services-config: a
// flat list of services to register at startup. Configuration loading
// from wherever the wider application keeps its settings is the
// responsibility of the caller; this is the only concrete loader the
// core ships, intended for the standalone CLI entrypoint.
type servicesConfig struct {
	Services []serviceConfig `yaml:"services"`
}

type serviceConfig struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Address string       `yaml:"address"`
	Port    int          `yaml:"port"`
	Tags    []string     `yaml:"tags"`
	Check   *checkConfig `yaml:"check"`
}

type checkConfig struct {
	TTL                            string `yaml:"ttl"`
	DeregisterCriticalServiceAfter string `yaml:"deregister_critical_service_after"`
}

// loadServicesConfig reads and decodes the YAML file at path into a list
// of types.Service.
func loadServicesConfig(path string) ([]types.Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg servicesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	services := make([]types.Service, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		svc := types.Service{
			ID:      s.ID,
			Name:    s.Name,
			Address: s.Address,
			Port:    s.Port,
			Tags:    s.Tags,
		}
		if s.Check != nil {
			svc.Check = &types.Check{
				TTL:                            s.Check.TTL,
				DeregisterCriticalServiceAfter: s.Check.DeregisterCriticalServiceAfter,
			}
		}
		services = append(services, svc)
	}
	return services, nil
}
