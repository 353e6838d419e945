// Package config loads application configuration from config.yaml, a local
// .env file and SYNERGY_* environment variables.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"synergy_valuation/pkg/core/valuation"
)

// Config holds the full application configuration.
type Config struct {
	Log         LogConfig             `yaml:"log" mapstructure:"log"`
	Report      ReportConfig          `yaml:"report" mapstructure:"report"`
	Sensitivity SensitivityConfig     `yaml:"sensitivity" mapstructure:"sensitivity"`
	Params      valuation.Params      `yaml:"params" mapstructure:"params"`
	Assumptions valuation.Assumptions `yaml:"assumptions" mapstructure:"assumptions"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Format   string `yaml:"format" mapstructure:"format"`
	Locale   string `yaml:"locale" mapstructure:"locale"`
	Currency string `yaml:"currency" mapstructure:"currency"`
}

// SensitivityConfig holds the default sensitivity grid, in percent.
type SensitivityConfig struct {
	WACCs   []float64 `yaml:"waccs" mapstructure:"waccs"`
	Growths []float64 `yaml:"growths" mapstructure:"growths"`
}

// Load reads configuration. A missing config.yaml or .env is not an error.
func Load() (*Config, error) {
	// Existing environment variables win over .env entries.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SYNERGY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("report.format", "text")
	v.SetDefault("report.locale", "en-US")
	v.SetDefault("report.currency", "USD")
	v.SetDefault("sensitivity.waccs", []float64{8, 9, 10, 11, 12})
	v.SetDefault("sensitivity.growths", []float64{2, 2.5, 3, 3.5})

	p := valuation.DefaultParams()
	v.SetDefault("params.forecast_years", p.ForecastYears)
	v.SetDefault("params.ramp_factor", p.RampFactor)
	v.SetDefault("params.realization_factor", p.RealizationFactor)
	v.SetDefault("params.synergy_annuity_periods", p.SynergyAnnuityPeriods)
	v.SetDefault("params.conservative_capture", p.ConservativeCapture)
	v.SetDefault("params.ceiling_annuity_factor", p.CeilingAnnuityFactor)
	v.SetDefault("params.integration_to_synergy", p.IntegrationToSynergy)
	v.SetDefault("params.integration_discount", p.IntegrationDiscount)
	v.SetDefault("params.synergy_risk_premium", p.SynergyRiskPremium)
	v.SetDefault("params.synergy_decay_years", p.SynergyDecayYears)
	v.SetDefault("params.tail_risk_haircut", p.TailRiskHaircut)
	v.SetDefault("params.integration_phasing", p.IntegrationPhasing)
	v.SetDefault("params.capture_cases.bear", p.CaptureCases.Bear)
	v.SetDefault("params.capture_cases.base", p.CaptureCases.Base)
	v.SetDefault("params.capture_cases.bull", p.CaptureCases.Bull)
	v.SetDefault("params.scenario_weights.bear", p.ScenarioWeights.Bear)
	v.SetDefault("params.scenario_weights.base", p.ScenarioWeights.Base)
	v.SetDefault("params.scenario_weights.bull", p.ScenarioWeights.Bull)

	a := valuation.DefaultAssumptions()
	v.SetDefault("assumptions.revenue", a.Revenue)
	v.SetDefault("assumptions.ebitdaMargin", a.EBITDAMargin)
	v.SetDefault("assumptions.revenueGrowth", a.RevenueGrowth)
	v.SetDefault("assumptions.wacc", a.WACC)
	v.SetDefault("assumptions.terminalGrowth", a.TerminalGrowth)
	v.SetDefault("assumptions.taxRate", a.TaxRate)
	v.SetDefault("assumptions.capex", a.Capex)
	v.SetDefault("assumptions.deltaWC", a.DeltaWC)
	v.SetDefault("assumptions.maxSynergy", a.MaxSynergy)
	v.SetDefault("assumptions.integrationCost", a.IntegrationCost)
	v.SetDefault("assumptions.synergyRiskDiscount", a.SynergyRiskDiscount)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger builds the global zap logger from cfg.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
