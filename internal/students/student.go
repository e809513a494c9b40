// Package students is the demo server's one domain table: the model
// turbostmt's students_integration_test.go exercises turbocache against
// (John/Ori/Dan, a nullable date of birth, key expression 'student:' ||
// id), now promoted out of the test tree so cmd/demo can serve it over
// HTTP.
package students

import (
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/orishu/turbocache/turbocache"
	"github.com/orishu/turbocache/turbostmt"
)

// Student is the row type cached under the "student:<id>" key family.
type Student struct {
	ID   int32      `json:"id" db:"id"`
	Name string     `json:"name" db:"name"`
	DOB  *time.Time `json:"dob,omitempty" db:"dob"`
}

func scanKeyed(rows *sqlx.Rows, key *string) (Student, error) {
	var s Student
	if err := rows.Scan(&s.ID, &s.Name, &s.DOB, key); err != nil {
		return Student{}, err
	}
	return s, nil
}

// KeyOf returns the cache key for a student id, matching the SQL
// expression ('student:' || id) the queries below project.
func KeyOf(id int32) string {
	return "student:" + strconv.FormatInt(int64(id), 10)
}

// selectAll loads every student, tunneling each row's cache key.
func selectAll() *turbostmt.Select[turbocache.Pair[Student, string]] {
	return turbostmt.NewKeyedSelect[Student](
		`SELECT id, name, dob, 'student:' || id FROM students ORDER BY id`,
		scanKeyed,
	)
}

// selectByID loads a single student by id, tunneling its cache key.
func selectByID(id int32) *turbostmt.Select[turbocache.Pair[Student, string]] {
	return turbostmt.NewKeyedSelect[Student](
		`SELECT id, name, dob, 'student:' || id FROM students WHERE id = $1`,
		scanKeyed,
		id,
	)
}

// updateName renames a student, for use with turbocache.InvalidateCacheOf.
func updateName(id int32, name string) *turbostmt.Update {
	return turbostmt.NewUpdate(`UPDATE students SET name = $1 WHERE id = $2`, name, id)
}
