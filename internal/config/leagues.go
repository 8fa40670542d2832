package config

import (
	stderrors "errors"
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
)

var leagueValidator = validator.New(validator.WithRequiredStructEnabled())

// leagueDescriptor is one LEAGUES_CONFIG entry. espn_sport and espn_league
// are accepted as older spellings of the external tags.
type leagueDescriptor struct {
	LeagueCode        string `json:"league_code"`
	ExternalSportTag  string `json:"external_sport_tag"`
	ExternalLeagueTag string `json:"external_league_tag"`
	ESPNSport         string `json:"espn_sport"`
	ESPNLeague        string `json:"espn_league"`
	LeagueName        string `json:"league_name"`
	IsActive          *bool  `json:"is_active"`
}

type resolvedLeague struct {
	Code      string `validate:"required,max=10"`
	SportTag  string `validate:"required"`
	LeagueTag string `validate:"required"`
	Name      string `validate:"required"`
	Active    *bool  `validate:"required"`
}

// ParseLeagues decodes and validates the league descriptor list.
func ParseLeagues(raw string) ([]league.League, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("league configuration is required")
	}

	var descriptors []leagueDescriptor
	if err := sonic.UnmarshalString(raw, &descriptors); err != nil {
		return nil, fmt.Errorf("decode league configuration: %w", err)
	}
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("league configuration must contain at least one league")
	}

	out := make([]league.League, 0, len(descriptors))
	seen := make(map[string]int, len(descriptors))
	for i, item := range descriptors {
		resolved := resolvedLeague{
			Code:      league.NormalizeCode(item.LeagueCode),
			SportTag:  firstNonEmpty(item.ExternalSportTag, item.ESPNSport),
			LeagueTag: firstNonEmpty(item.ExternalLeagueTag, item.ESPNLeague),
			Name:      strings.TrimSpace(item.LeagueName),
			Active:    item.IsActive,
		}
		if err := leagueValidator.Struct(resolved); err != nil {
			return nil, fmt.Errorf("league[%d]: %s", i, describeValidation(err))
		}
		if prev, ok := seen[resolved.Code]; ok {
			return nil, fmt.Errorf("league[%d]: duplicate league_code %q (first at league[%d])", i, resolved.Code, prev)
		}
		seen[resolved.Code] = i

		out = append(out, league.League{
			Code:      resolved.Code,
			SportTag:  resolved.SportTag,
			LeagueTag: resolved.LeagueTag,
			Name:      resolved.Name,
			Active:    *resolved.Active,
		})
	}

	return out, nil
}

var descriptorKeys = map[string]string{
	"Code":      "league_code",
	"SportTag":  "external_sport_tag",
	"LeagueTag": "external_league_tag",
	"Name":      "league_name",
	"Active":    "is_active",
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := descriptorKeys[fe.Field()]
		if key == "" {
			key = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			parts = append(parts, key+" is required")
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", key, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", key, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
