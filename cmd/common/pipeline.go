// Package common wires the extraction pipeline components the commands
// share: rule loading, the recommender chain, the store and draft handling.
package common

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"whereismymoney/wimm/internal/assembler"
	"whereismymoney/wimm/internal/categorizer"
	"whereismymoney/wimm/internal/config"
	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"
	"whereismymoney/wimm/internal/rules"
	"whereismymoney/wimm/internal/store"

	"github.com/sirupsen/logrus"
)

// BuildRecommender assembles the category strategy chain from configuration:
// keyword rules (file-backed or built-in), plus the Gemini fallback when AI
// is enabled.
func BuildRecommender(cfg *config.Config, log *logrus.Logger) *categorizer.Recommender {
	logger := logging.NewLogrusAdapterFromLogger(log)

	ruleStore := rules.NewRuleStore(cfg.Rules.Path)
	categoryRules, err := ruleStore.Load()
	if err != nil {
		log.WithError(err).Warn("Failed to load category rules, using built-in table")
		categoryRules = nil
	}

	strategies := []categorizer.Strategy{
		categorizer.NewKeywordStrategy(categoryRules, logger),
	}

	if cfg.AI.Enabled {
		names := make([]string, 0, len(categoryRules))
		for _, rule := range categoryRules {
			names = append(names, rule.Name)
		}
		strategies = append(strategies, categorizer.NewGeminiStrategy(
			cfg.AI.APIKey,
			cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
			names,
			logger,
		))
	}

	return categorizer.NewRecommender(logger, strategies...)
}

// OpenStore opens the configured sqlite store.
func OpenStore(cfg *config.Config) (*store.Store, error) {
	return store.Open(cfg.Database.Path)
}

// BuildAssembler creates the draft assembler over the given store reader.
func BuildAssembler(cfg *config.Config, st assembler.StoreReader, log *logrus.Logger) *assembler.Assembler {
	return assembler.New(BuildRecommender(cfg, log), st, logging.NewLogrusAdapterFromLogger(log))
}

// HandleInfo assembles a draft from payment info, prints it, and persists
// it when save is set.
func HandleInfo(info models.ParsedPaymentInfo, asm *assembler.Assembler, st *store.Store, save bool, log *logrus.Logger) {
	draft := asm.Assemble(context.Background(), info)
	PrintDraft(draft)

	if !save {
		return
	}
	id, err := st.InsertTransaction(draft)
	if err != nil {
		log.WithError(err).Error("Failed to save draft")
		return
	}
	log.WithField("id", id).Info("Draft saved for review")
}

// PrintDraft writes the draft as indented JSON to stdout.
func PrintDraft(draft models.TransactionDraft) {
	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render draft: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
