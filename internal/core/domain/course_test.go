package domain

import "testing"

func TestCourse_CanBeMutatedBy(t *testing.T) {
	course := &Course{ID: "course_1", InstructorID: "inst_1"}

	tests := []struct {
		name string
		user *User
		want bool
	}{
		{"owner", &User{ID: "inst_1", Role: RoleInstructor}, true},
		{"admin", &User{ID: "admin_1", Role: RoleAdmin}, true},
		{"other instructor", &User{ID: "inst_2", Role: RoleInstructor}, false},
		{"student", &User{ID: "stud_1", Role: RoleStudent}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := course.CanBeMutatedBy(tt.user); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCourse_IsEnrolled(t *testing.T) {
	course := &Course{EnrolledStudents: []string{"stud_1", "stud_2"}}

	if !course.IsEnrolled("stud_1") {
		t.Fatalf("expected stud_1 enrolled")
	}
	if course.IsEnrolled("stud_3") {
		t.Fatalf("expected stud_3 not enrolled")
	}
}

func TestCourse_RatingBy(t *testing.T) {
	course := &Course{Ratings: []Rating{
		{UserID: "stud_1", Value: 4},
		{UserID: "stud_2", Value: 2},
	}}

	if got := course.RatingBy("stud_2"); got == nil || got.Value != 2 {
		t.Fatalf("unexpected rating: %+v", got)
	}
	if got := course.RatingBy("ghost"); got != nil {
		t.Fatalf("expected nil for a user with no rating, got %+v", got)
	}
}

func TestLevelAndRoleValidity(t *testing.T) {
	for _, l := range []Level{LevelBeginner, LevelIntermediate, LevelAdvanced} {
		if !l.Valid() {
			t.Fatalf("level %q should be valid", l)
		}
	}
	if Level("expert").Valid() {
		t.Fatalf("unknown level should be invalid")
	}

	for _, r := range []Role{RoleStudent, RoleInstructor, RoleAdmin} {
		if !r.Valid() {
			t.Fatalf("role %q should be valid", r)
		}
	}
	if Role("superuser").Valid() {
		t.Fatalf("unknown role should be invalid")
	}
}
