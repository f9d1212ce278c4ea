package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// Final backstop against double-sold seats: one ticket per
	// (date, session, seat) regardless of which transaction wins.
	// ADD CONSTRAINT has no IF NOT EXISTS form, so re-runs are absorbed
	// via the duplicate_object/duplicate_table handler.
	err := db.Exec(`
		DO $$
		BEGIN
			ALTER TABLE tickets
				ADD CONSTRAINT unique_seat_per_showing
				UNIQUE (date, session_id, seat_number);
		EXCEPTION
			WHEN duplicate_object THEN NULL;
			WHEN duplicate_table THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Index for seat availability lookups on the purchase path
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_session_date
		ON tickets (session_id, date);
	`).Error
	if err != nil {
		return err
	}

	// Index for the overlap scan when scheduling sessions in a room
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sessions_room_dates
		ON sessions (room_id, date_start, date_finish);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
