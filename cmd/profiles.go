package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/investor-match/internal/contact"
	"github.com/sells-group/investor-match/internal/profile"
	"github.com/sells-group/investor-match/internal/store"
	"github.com/sells-group/investor-match/internal/table"
)

// buildFromData loads the master and contact spreadsheets and builds the
// full profile list. A missing master file is fatal; missing contact
// files degrade to profiles without contact-file contacts.
func buildFromData() ([]profile.Profile, error) {
	master, err := table.Read(cfg.Data.MasterFile)
	if err != nil {
		return nil, eris.Wrapf(err, "load master table %s", cfg.Data.MasterFile)
	}

	contactTables := contact.LoadTables(cfg.Data.ContactFiles)
	return profile.BuildProfiles(master, contactTables)
}

// loadOrBuild returns profiles from the sqlite index when one exists,
// falling back to a fresh build from the spreadsheets.
func loadOrBuild(ctx context.Context) ([]profile.Profile, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		zap.L().Warn("profile index unavailable, building from spreadsheets", zap.Error(err))
		return buildFromData()
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}

	n, err := st.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		zap.L().Info("profile index empty, building from spreadsheets")
		return buildFromData()
	}

	zap.L().Info("loading profiles from index", zap.Int("profiles", n))
	return st.LoadProfiles(ctx)
}
