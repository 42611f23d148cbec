package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// createDemoData writes the bundled sample students/teachers/courses/rooms
// under dir, so `demo` has something to load on a clean checkout.
func createDemoData(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create demo data directory: %w", err)
	}

	files := map[string]interface{}{
		"students.json": demoStudents,
		"teachers.json": demoTeachers,
		"courses.json":  demoCourses,
		"rooms.json":    demoRooms,
	}
	for name, payload := range files {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

var demoStudents = []map[string]interface{}{
	{"id": "s001", "name": "Alice Johnson", "grade": 10, "required_courses": []string{"math10", "eng10", "sci10"}, "elective_preferences": []string{"art", "music"}},
	{"id": "s002", "name": "Bob Smith", "grade": 10, "required_courses": []string{"math10", "eng10", "sci10"}, "elective_preferences": []string{"music", "art"}},
	{"id": "s003", "name": "Carol Davis", "grade": 10, "required_courses": []string{"math10", "eng10", "sci10"}, "elective_preferences": []string{"art", "pe"}},
	{"id": "s004", "name": "David Wilson", "grade": 11, "required_courses": []string{"math11", "eng11", "sci11"}, "elective_preferences": []string{"pe", "art"}},
	{"id": "s005", "name": "Eve Brown", "grade": 11, "required_courses": []string{"math11", "eng11", "sci11"}, "elective_preferences": []string{"music", "pe"}},
	{"id": "s006", "name": "Frank Miller", "grade": 11, "required_courses": []string{"math11", "eng11", "sci11"}, "elective_preferences": []string{"art", "music"}},
	{"id": "s007", "name": "Grace Lee", "grade": 12, "required_courses": []string{"math12", "eng12", "gov"}, "elective_preferences": []string{"pe", "music"}},
	{"id": "s008", "name": "Henry Taylor", "grade": 12, "required_courses": []string{"math12", "eng12", "gov"}, "elective_preferences": []string{"art", "pe"}},
	{"id": "s009", "name": "Ivy Chen", "grade": 12, "required_courses": []string{"math12", "eng12", "gov"}, "elective_preferences": []string{"music", "art"}},
	{"id": "s010", "name": "Jack Robinson", "grade": 10, "required_courses": []string{"math10", "eng10", "sci10"}, "elective_preferences": []string{"pe", "music"}},
}

var demoTeachers = []map[string]interface{}{
	{"id": "t001", "name": "Ms. Anderson", "subjects": []string{"math10", "math11", "math12"}, "max_sections": 4, "unavailable": []string{}},
	{"id": "t002", "name": "Mr. Baker", "subjects": []string{"eng10", "eng11", "eng12"}, "max_sections": 4, "unavailable": []string{}},
	{"id": "t003", "name": "Dr. Clark", "subjects": []string{"sci10", "sci11"}, "max_sections": 3, "unavailable": []string{}},
	{"id": "t004", "name": "Ms. Davis", "subjects": []string{"gov"}, "max_sections": 2, "unavailable": []string{}},
	{"id": "t005", "name": "Mr. Evans", "subjects": []string{"art", "music"}, "max_sections": 4, "unavailable": []string{}},
	{"id": "t006", "name": "Coach Fisher", "subjects": []string{"pe"}, "max_sections": 4, "unavailable": []string{}},
}

var demoCourses = []map[string]interface{}{
	{"id": "math10", "name": "Algebra 2", "max_students": 25, "grade_restrictions": []int{10}, "required_features": []string{}, "sections": 1},
	{"id": "math11", "name": "Pre-Calculus", "max_students": 25, "grade_restrictions": []int{11}, "required_features": []string{}, "sections": 1},
	{"id": "math12", "name": "Calculus", "max_students": 25, "grade_restrictions": []int{12}, "required_features": []string{}, "sections": 1},
	{"id": "eng10", "name": "English 10", "max_students": 25, "grade_restrictions": []int{10}, "required_features": []string{}, "sections": 1},
	{"id": "eng11", "name": "English 11", "max_students": 25, "grade_restrictions": []int{11}, "required_features": []string{}, "sections": 1},
	{"id": "eng12", "name": "English 12", "max_students": 25, "grade_restrictions": []int{12}, "required_features": []string{}, "sections": 1},
	{"id": "sci10", "name": "Biology", "max_students": 24, "grade_restrictions": []int{10}, "required_features": []string{"lab"}, "sections": 1},
	{"id": "sci11", "name": "Chemistry", "max_students": 24, "grade_restrictions": []int{11}, "required_features": []string{"lab"}, "sections": 1},
	{"id": "gov", "name": "Government", "max_students": 25, "grade_restrictions": []int{12}, "required_features": []string{}, "sections": 1},
	{"id": "art", "name": "Art", "max_students": 20, "grade_restrictions": []int{}, "required_features": []string{"art_room"}, "sections": 2},
	{"id": "music", "name": "Music", "max_students": 25, "grade_restrictions": []int{}, "required_features": []string{}, "sections": 2},
	{"id": "pe", "name": "Physical Education", "max_students": 30, "grade_restrictions": []int{}, "required_features": []string{"gym"}, "sections": 2},
}

var demoRooms = []map[string]interface{}{
	{"id": "101", "name": "Room 101", "capacity": 30, "features": []string{}, "unavailable": []string{}},
	{"id": "102", "name": "Room 102", "capacity": 30, "features": []string{}, "unavailable": []string{}},
	{"id": "103", "name": "Room 103", "capacity": 30, "features": []string{}, "unavailable": []string{}},
	{"id": "104", "name": "Room 104", "capacity": 30, "features": []string{}, "unavailable": []string{}},
	{"id": "201", "name": "Science Lab", "capacity": 24, "features": []string{"lab"}, "unavailable": []string{}},
	{"id": "301", "name": "Art Studio", "capacity": 20, "features": []string{"art_room"}, "unavailable": []string{}},
	{"id": "gym", "name": "Gymnasium", "capacity": 60, "features": []string{"gym"}, "unavailable": []string{}},
}
