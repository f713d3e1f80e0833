package update

import (
	"context"
	"errors"
	"events2/internal/lib/logger/sl"
	"events2/internal/models"
	"events2/internal/storage"
	"fmt"
	"html"
	"log/slog"
)

const (
	tableEvent           = "tx_events2_domain_model_event"
	legacyRecurringField = "recurring_event"
)

// scaMapping maps legacy switchable controller actions of the plugin to
// their replacements. listRange and listThisWeek swap on purpose.
var scaMapping = []struct {
	Old string
	New string
}{
	{
		Old: "Event->listLatest;Event->show;Day->show;Location->show;Video->show",
		New: "Day->listLatest;Day->show;Day->showByTimestamp;Location->show;Video->show",
	},
	{
		Old: "Event->listToday;Event->show;Day->show;Location->show;Video->show",
		New: "Day->listToday;Day->show;Day->showByTimestamp;Location->show;Video->show",
	},
	{
		Old: "Event->listRange;Event->show;Day->show;Location->show;Video->show",
		New: "Day->listThisWeek;Day->show;Day->showByTimestamp;Location->show;Video->show",
	},
	{
		Old: "Event->listThisWeek;Event->show;Day->show;Location->show;Video->show",
		New: "Day->listRange;Day->show;Day->showByTimestamp;Location->show;Video->show",
	},
}

const msgRecurringColsCompared = "It seems that you have compared all cols against TCA in Installtool already. " +
	"Please add new cols only, than migrate the old records and then you can delete unneeded cols in Installtool."

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	CountEventsWithoutType(ctx context.Context) (int, error)
	GetColumnsFromTable(ctx context.Context, tableName string) (map[string]models.Column, error)
	MigrateRecurringColumn(ctx context.Context) (int, error)
	CountFlexFormsContaining(ctx context.Context, needle string) (int, error)
	ReplaceInFlexForms(ctx context.Context, replacements []models.FlexFormReplacement) (int64, error)
}

// Updater migrates records written by older versions of the extension.
type Updater struct {
	log   *slog.Logger
	store Store
}

func New(log *slog.Logger, store Store) *Updater {
	return &Updater{
		log:   log,
		store: store,
	}
}

// flexFormValue returns s the way it is stored inside FlexForm XML.
func flexFormValue(s string) string {
	return html.EscapeString(s)
}

// Access reports whether there is anything left to migrate.
func (u *Updater) Access(ctx context.Context) (bool, error) {
	const op = "update.Access"

	count, err := u.store.CountEventsWithoutType(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		return true, nil
	}

	for _, m := range scaMapping {
		count, err = u.store.CountFlexFormsContaining(ctx, flexFormValue(m.Old))
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		if count > 0 {
			return true, nil
		}
	}

	return false, nil
}

// Main runs all migrations and returns their messages in order.
func (u *Updater) Main(ctx context.Context) ([]models.FlashMessage, error) {
	const op = "update.Main"

	log := u.log.With(slog.String("op", op))

	var messages []models.FlashMessage

	msg, err := u.MigrateColRecurringToEventType(ctx)
	if err != nil {
		log.Error("failed to migrate recurring column", sl.Err(err))
		return messages, fmt.Errorf("%s: %w", op, err)
	}
	messages = append(messages, msg)

	msg, err = u.MigrateToNewSwitchableControllerActionsInFlexForms(ctx)
	if err != nil {
		log.Error("failed to migrate switchable controller actions", sl.Err(err))
		return messages, fmt.Errorf("%s: %w", op, err)
	}
	messages = append(messages, msg)

	log.Info("update finished", slog.Int("messages", len(messages)))

	return messages, nil
}

// MigrateColRecurringToEventType sets event_type of legacy events from their
// recurring_event flag.
func (u *Updater) MigrateColRecurringToEventType(ctx context.Context) (models.FlashMessage, error) {
	const op = "update.MigrateColRecurringToEventType"

	warning := models.FlashMessage{
		Severity: models.SeverityWarning,
		Title:    "Error while migration",
		Message:  msgRecurringColsCompared,
	}

	columns, err := u.store.GetColumnsFromTable(ctx, tableEvent)
	if err != nil {
		if errors.Is(err, storage.ErrTableNotFound) {
			return warning, nil
		}
		return models.FlashMessage{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, ok := columns[legacyRecurringField]; !ok {
		return warning, nil
	}

	count, err := u.store.MigrateRecurringColumn(ctx)
	if err != nil {
		return models.FlashMessage{}, fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return warning, nil
	}

	return models.FlashMessage{
		Severity: models.SeverityOK,
		Title:    `Migrating "recurring" col was successful`,
		Message:  fmt.Sprintf("We have updated %d event records", count),
	}, nil
}

// MigrateToNewSwitchableControllerActionsInFlexForms rewrites legacy plugin
// actions stored in tt_content FlexForms.
func (u *Updater) MigrateToNewSwitchableControllerActionsInFlexForms(ctx context.Context) (models.FlashMessage, error) {
	const op = "update.MigrateToNewSwitchableControllerActionsInFlexForms"

	replacements := make([]models.FlexFormReplacement, 0, len(scaMapping))
	for _, m := range scaMapping {
		replacements = append(replacements, models.FlexFormReplacement{
			Old: flexFormValue(m.Old),
			New: flexFormValue(m.New),
		})
	}

	affected, err := u.store.ReplaceInFlexForms(ctx, replacements)
	if err != nil {
		return models.FlashMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return models.FlashMessage{
			Severity: models.SeverityWarning,
			Title:    "Migrating SCA skipped",
			Message:  "There are no tt_content records with old switchable controller actions",
		}, nil
	}

	return models.FlashMessage{
		Severity: models.SeverityOK,
		Title:    "Migrating SCA successful",
		Message:  fmt.Sprintf("We have updated %d related tt_content records", affected),
	}, nil
}
