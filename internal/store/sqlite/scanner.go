package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanUserRow scans a single user row
func ScanUserRow(scanner Scanner) (userRow, error) {
	var row userRow
	err := scanner.Scan(
		&row.ID,
		&row.Name,
		&row.Email,
		&row.Phone,
		&row.Role,
		&row.PIN,
		&row.CreatedAt,
		&row.IsSuspended,
		&row.SuspensionNotes,
	)
	return row, err
}

// ScanUserRows scans all user rows
func ScanUserRows(rows Rows) ([]userRow, error) {
	var result []userRow
	for rows.Next() {
		row, err := ScanUserRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ScanEntryRow scans a single time entry row
func ScanEntryRow(scanner Scanner) (entryRow, error) {
	var row entryRow
	var logoutTime sql.NullString

	err := scanner.Scan(
		&row.ID,
		&row.UserID,
		&row.LoginTime,
		&logoutTime,
		&row.TotalHours,
		&row.Date,
		&row.Edited,
		&row.LastModified,
		&row.EditNotes,
	)
	if err != nil {
		return entryRow{}, err
	}

	if logoutTime.Valid {
		row.LogoutTime = &logoutTime.String
	}

	return row, nil
}

// ScanEntryRows scans all time entry rows
func ScanEntryRows(rows Rows) ([]entryRow, error) {
	var result []entryRow
	for rows.Next() {
		row, err := ScanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ScanNoteRow scans a single note row
func ScanNoteRow(scanner Scanner) (noteRow, error) {
	var row noteRow
	err := scanner.Scan(
		&row.ID,
		&row.EntityID,
		&row.EntityType,
		&row.Timestamp,
		&row.Editor,
		&row.Note,
	)
	return row, err
}

// ScanNoteRows scans all note rows
func ScanNoteRows(rows Rows) ([]noteRow, error) {
	var result []noteRow
	for rows.Next() {
		row, err := ScanNoteRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
