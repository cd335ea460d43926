package repository

import (
	"context"

	"social_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MeetingRepository struct {
	db *pgxpool.Pool
}

func NewMeetingRepository(db *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// GetOrCreatePlace finds a place by case-insensitive name or creates it.
func (r *MeetingRepository) GetOrCreatePlace(ctx context.Context, tx pgx.Tx, name string) (*domain.Place, error) {
	var p domain.Place
	err := tx.QueryRow(ctx,
		`SELECT id, name FROM places WHERE lower(name) = lower($1)`, name,
	).Scan(&p.ID, &p.Name)
	if err == nil {
		return &p, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO places (name) VALUES ($1) RETURNING id, name`, name,
	).Scan(&p.ID, &p.Name)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPlacesByUsage returns places ordered by how many meetings used them.
func (r *MeetingRepository) ListPlacesByUsage(ctx context.Context) ([]*domain.Place, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name, COUNT(m.id)
		 FROM places p
		 LEFT JOIN meetings m ON m.place_id = p.id
		 GROUP BY p.id, p.name
		 ORDER BY COUNT(m.id) DESC, p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Place
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Meetings); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

const meetingColumns = `id, date, place_id, COALESCE(description, ''), confirmed_by_majority, pizza, casino`

func scanMeeting(row pgx.Row) (*domain.Meeting, error) {
	var m domain.Meeting
	err := row.Scan(&m.ID, &m.Date, &m.PlaceID, &m.Description, &m.ConfirmedByMajority, &m.Pizza, &m.Casino)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeetingRepository) Create(ctx context.Context, tx pgx.Tx, m *domain.Meeting) error {
	return tx.QueryRow(ctx,
		`INSERT INTO meetings (date, place_id, description, pizza, casino)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		m.Date, m.PlaceID, m.Description, m.Pizza, m.Casino,
	).Scan(&m.ID)
}

func (r *MeetingRepository) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	return scanMeeting(r.db.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id))
}

// GetForUpdate row-locks the meeting inside tx so only one confirmation can
// trip the majority transition.
func (r *MeetingRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Meeting, error) {
	return scanMeeting(tx.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1 FOR UPDATE`, id))
}

// List returns meetings filtered by confirmation state, newest first.
func (r *MeetingRepository) List(ctx context.Context, confirmed *bool) ([]*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings`
	args := []any{}
	if confirmed != nil {
		query += ` WHERE confirmed_by_majority = $1`
		args = append(args, *confirmed)
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// MarkConfirmedByMajority flips the one-way confirmed flag inside tx.
func (r *MeetingRepository) MarkConfirmedByMajority(ctx context.Context, tx pgx.Tx, meetingID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE meetings SET confirmed_by_majority = true WHERE id = $1`, meetingID)
	return err
}

func (r *MeetingRepository) CreateAttendance(ctx context.Context, tx pgx.Tx, a *domain.Attendance) error {
	return tx.QueryRow(ctx,
		`INSERT INTO attendances (user_id, meeting_id, drinking, confirmed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		a.UserID, a.MeetingID, a.Drinking, a.Confirmed,
	).Scan(&a.ID)
}

// GetAttendanceForUpdate loads and locks one user's attendance row inside
// tx. pgx.ErrNoRows means the user was not at the meeting.
func (r *MeetingRepository) GetAttendanceForUpdate(ctx context.Context, tx pgx.Tx, meetingID, userID int64) (*domain.Attendance, error) {
	var a domain.Attendance
	err := tx.QueryRow(ctx,
		`SELECT id, user_id, meeting_id, drinking, confirmed
		 FROM attendances WHERE meeting_id = $1 AND user_id = $2
		 FOR UPDATE`,
		meetingID, userID,
	).Scan(&a.ID, &a.UserID, &a.MeetingID, &a.Drinking, &a.Confirmed)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// MarkAttendanceConfirmed flips the one-way confirmed flag inside tx.
func (r *MeetingRepository) MarkAttendanceConfirmed(ctx context.Context, tx pgx.Tx, attendanceID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE attendances SET confirmed = true WHERE id = $1`, attendanceID)
	return err
}

// ListAttendances returns every attendance of a meeting.
func (r *MeetingRepository) ListAttendances(ctx context.Context, meetingID int64) ([]*domain.Attendance, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, meeting_id, drinking, confirmed
		 FROM attendances WHERE meeting_id = $1 ORDER BY id`,
		meetingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Attendance
	for rows.Next() {
		var a domain.Attendance
		if err := rows.Scan(&a.ID, &a.UserID, &a.MeetingID, &a.Drinking, &a.Confirmed); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}

// CountAttendees and CountConfirmed feed the majority threshold check;
// both run inside tx during confirmation.
func (r *MeetingRepository) CountAttendees(ctx context.Context, tx pgx.Tx, meetingID int64) (int, error) {
	var n int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE meeting_id = $1`, meetingID,
	).Scan(&n)
	return n, err
}

func (r *MeetingRepository) CountConfirmed(ctx context.Context, tx pgx.Tx, meetingID int64) (int, error) {
	var n int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE meeting_id = $1 AND confirmed = true`, meetingID,
	).Scan(&n)
	return n, err
}

// AttendeeIDs returns the user ids of every attendee, inside tx.
func (r *MeetingRepository) AttendeeIDs(ctx context.Context, tx pgx.Tx, meetingID int64) ([]int64, error) {
	rows, err := tx.Query(ctx,
		`SELECT user_id FROM attendances WHERE meeting_id = $1 ORDER BY user_id`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetPlace returns a place by id.
func (r *MeetingRepository) GetPlace(ctx context.Context, id int64) (*domain.Place, error) {
	var p domain.Place
	err := r.db.QueryRow(ctx, `SELECT id, name FROM places WHERE id = $1`, id).Scan(&p.ID, &p.Name)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
