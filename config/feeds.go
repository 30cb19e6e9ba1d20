package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FeedSource groups the RSS endpoints published under one site. BaseURL is
// the source label carried on every article parsed from its endpoints.
type FeedSource struct {
	Name      string   `yaml:"name"`
	BaseURL   string   `yaml:"base_url"`
	Endpoints []string `yaml:"endpoints"`
}

// DefaultFeedSources is the built-in feed configuration.
var DefaultFeedSources = []FeedSource{
	{
		Name:    "public",
		BaseURL: "public.fr",
		Endpoints: []string{
			"https://www.public.fr/dernieres-actualites/feed",
			"https://www.public.fr/people/feed",
			"https://www.public.fr/tele/feed",
			"https://www.public.fr/faits-divers/feed",
			"https://www.public.fr/lifestyle/feed",
		},
	},
	{
		Name:    "vsd",
		BaseURL: "vsd.fr",
		Endpoints: []string{
			"https://vsd.fr/actu-people/feed",
			"https://vsd.fr/tele/feed",
			"https://vsd.fr/societe/feed",
			"https://vsd.fr/loisirs/feed",
			"https://vsd.fr/culture/feed",
		},
	},
}

type feedsFile struct {
	Sources []FeedSource `yaml:"sources"`
}

// LoadFeedSources reads feed sources from a YAML file. An empty path or a
// missing file yields the built-in defaults; a present but invalid file is
// an error so a broken override never silently falls back.
func LoadFeedSources(path string) ([]FeedSource, error) {
	if path == "" {
		return DefaultFeedSources, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFeedSources, nil
		}
		return nil, fmt.Errorf("reading feeds file %s: %w", path, err)
	}
	var f feedsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing feeds file %s: %w", path, err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("feeds file %s defines no sources", path)
	}
	for _, s := range f.Sources {
		if s.BaseURL == "" {
			return nil, fmt.Errorf("feeds file %s: source %q has no base_url", path, s.Name)
		}
		if len(s.Endpoints) == 0 {
			return nil, fmt.Errorf("feeds file %s: source %q has no endpoints", path, s.Name)
		}
	}
	return f.Sources, nil
}
