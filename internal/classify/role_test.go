package classify

import "testing"

func TestCategorizeRole(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Associate Product Manager", RoleProductManager},
		{"Product Management Rotation", RoleProductManager},
		{"Technical Program Manager, AI Safety", RoleProgramManager},
		{"Project Manager", RoleProgramManager},
		{"Data Analyst", RoleDataAnalytics},
		{"Business Intelligence Analyst", RoleDataAnalytics},
		{"Strategy & Operations Associate", RoleOpsGTM},
		{"Growth Marketing Specialist", RoleOpsGTM},
		{"AI Safety Researcher", RoleResearchSafety},
		{"Trust & Safety Specialist", RoleResearchSafety},
		{"Solutions Engineer", RoleSolutionsEng},
		{"Software Engineer, Backend", RoleSoftwareEng},
		{"Site Reliability Engineer", RoleOtherEngineering},
		{"Technical Recruiter", RoleHRRecruiting},
		{"Office Dog Walker", RoleOther},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := CategorizeRole(tt.title); got != tt.want {
				t.Errorf("CategorizeRole(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

// Order matters: a title hitting several keyword groups must land on the
// first rung of the ladder that matches.
func TestCategorizeRoleLadderOrder(t *testing.T) {
	if got := CategorizeRole("Product Manager, Data Analytics"); got != RoleProductManager {
		t.Errorf("got %q, want %q", got, RoleProductManager)
	}
	if got := CategorizeRole("Program Manager, Research"); got != RoleProgramManager {
		t.Errorf("got %q, want %q", got, RoleProgramManager)
	}
}

func TestRoleCategoriesOrder(t *testing.T) {
	cats := RoleCategories()
	if len(cats) != 10 {
		t.Fatalf("got %d categories, want 10", len(cats))
	}
	if cats[0] != RoleProductManager {
		t.Errorf("first category = %q, want %q", cats[0], RoleProductManager)
	}
	if cats[len(cats)-1] != RoleOther {
		t.Errorf("last category = %q, want %q", cats[len(cats)-1], RoleOther)
	}
}
