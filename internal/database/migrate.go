package database

import (
	"context"
	"database/sql"
	"time"
)

// schema holds the bootstrap DDL.  Statements are idempotent so startup can
// run them unconditionally; production deployments would normally apply
// versioned migrations instead.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                 CHAR(36)     NOT NULL,
		email              VARCHAR(255) NOT NULL,
		password_hash      VARCHAR(255) NOT NULL,
		first_name         VARCHAR(100) NULL,
		last_name          VARCHAR(100) NULL,
		date_of_birth      DATE         NULL,
		email_confirmed    TINYINT(1)   NOT NULL DEFAULT 0,
		temp_email         VARCHAR(255) NULL,
		confirmation_token VARCHAR(128) NULL,
		created_at         DATETIME     NOT NULL,
		updated_at         DATETIME     NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
		id           CHAR(36)     NOT NULL,
		name         VARCHAR(255) NOT NULL,
		description  TEXT         NOT NULL,
		rating       VARCHAR(16)  NOT NULL,
		poster_url   VARCHAR(512) NULL,
		running_time INT          NOT NULL,
		release_date DATE         NOT NULL,
		genre        VARCHAR(32)  NOT NULL,
		format       VARCHAR(16)  NOT NULL,
		language     VARCHAR(32)  NOT NULL,
		is_featured  TINYINT(1)   NOT NULL DEFAULT 0,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS showtimes (
		id             CHAR(36)     NOT NULL,
		movie_id       CHAR(36)     NOT NULL,
		show_date      DATE         NOT NULL,
		theatre_name   VARCHAR(255) NOT NULL,
		price_per_seat INT          NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_showtimes_show (movie_id, show_date, theatre_name),
		CONSTRAINT fk_showtimes_movie FOREIGN KEY (movie_id) REFERENCES movies (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS showtime_slots (
		showtime_id CHAR(36)    NOT NULL,
		time_slot   VARCHAR(16) NOT NULL,
		seats_left  INT         NOT NULL,
		PRIMARY KEY (showtime_id, time_slot),
		CONSTRAINT fk_slots_showtime FOREIGN KEY (showtime_id) REFERENCES showtimes (id) ON DELETE CASCADE,
		CONSTRAINT chk_slots_nonneg CHECK (seats_left >= 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id           CHAR(36)    NOT NULL,
		user_id      CHAR(36)    NOT NULL,
		movie_id     CHAR(36)    NOT NULL,
		show_date    DATE        NOT NULL,
		theatre_name VARCHAR(255) NOT NULL,
		time_slot    VARCHAR(16) NOT NULL,
		booked_seats INT         NOT NULL,
		total_amount INT         NOT NULL,
		status       VARCHAR(16) NOT NULL,
		order_date   DATETIME    NOT NULL,
		PRIMARY KEY (id),
		KEY idx_bookings_user (user_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the bootstrap schema.
func Migrate(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
