package clock

import "time"

// Clock memisahkan "waktu sekarang" dari time.Now supaya service bisa
// dites dengan instant yang deterministik. Semua penentuan "hari ini"
// untuk sesi lembur dan payroll wajib lewat interface ini, memakai satu
// zona waktu kanonik agar tidak tergantung jam lokal server.
type Clock interface {
	Now() time.Time
	// Today mengembalikan tanggal kalender hari ini (jam 00:00) pada zona kanonik.
	Today() time.Time
	// Location adalah zona kanonik tempat jam kerja dan batas hari dievaluasi.
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// New membuat Clock dengan zona waktu kanonik. Nama zona kosong atau tidak
// dikenal jatuh ke Asia/Kolkata.
func New(timezone string) Clock {
	loc, err := time.LoadLocation(timezone)
	if timezone == "" || err != nil {
		loc, _ = time.LoadLocation("Asia/Kolkata")
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *systemClock) Today() time.Time {
	return DateOf(c.Now())
}

func (c *systemClock) Location() *time.Location {
	return c.loc
}

// DateOf menormalkan instant apapun menjadi tanggal-saja (00:00 UTC) supaya
// perbandingan tanggal antar record konsisten dengan kolom DATE di database.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Fixed mengembalikan Clock yang selalu menjawab instant yang sama (untuk test).
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time           { return c.t }
func (c fixedClock) Today() time.Time         { return DateOf(c.t) }
func (c fixedClock) Location() *time.Location { return c.t.Location() }
