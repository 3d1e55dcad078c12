package taxonomy

// defaultCategories returns the 18-category HFACS 8.0 set. The taxonomy
// is deliberately configuration, not a constant: published HFACS variants
// range from 18 to 28 factors, and an alternate set can be supplied via a
// taxonomy file without touching this package.
func defaultCategories() []Category {
	return []Category{
		{Code: "AE100", Name: "Performance/Skill-Based Errors", Level: LevelUnsafeActs, Group: "Errors"},
		{Code: "AE200", Name: "Judgement & Decision-Making Errors", Level: LevelUnsafeActs, Group: "Errors"},
		{Code: "AD000", Name: "Known Deviations", Level: LevelUnsafeActs, Group: "Deviations"},
		{Code: "PE100", Name: "Physical Environment", Level: LevelPreconditions, Group: "Environmental Factors"},
		{Code: "PE200", Name: "Technological Environment", Level: LevelPreconditions, Group: "Environmental Factors"},
		{Code: "PP100", Name: "Team Coordination/Communication", Level: LevelPreconditions, Group: "Personnel Factors"},
		{Code: "PT100", Name: "Training Conditions", Level: LevelPreconditions, Group: "Personnel Factors"},
		{Code: "PC100", Name: "Mental Awareness", Level: LevelPreconditions, Group: "Condition of Individuals"},
		{Code: "PC200", Name: "State of Mind", Level: LevelPreconditions, Group: "Condition of Individuals"},
		{Code: "PC300", Name: "Adverse Physiological States", Level: LevelPreconditions, Group: "Condition of Individuals"},
		{Code: "SC100", Name: "Unit Safety Culture", Level: LevelSupervision, Group: "Climate"},
		{Code: "SV100", Name: "Supervisory Known Deviations", Level: LevelSupervision, Group: "Deviations"},
		{Code: "SI100", Name: "Ineffective Supervision", Level: LevelSupervision, Group: "Oversight"},
		{Code: "SP100", Name: "Ineffective Planning & Coordination", Level: LevelSupervision, Group: "Oversight"},
		{Code: "OC100", Name: "Climate/Culture", Level: LevelOrganizational, Group: "Climate"},
		{Code: "OP100", Name: "Policy/Procedures/Process", Level: LevelOrganizational, Group: "Process"},
		{Code: "OR100", Name: "Resource Support", Level: LevelOrganizational, Group: "Resources"},
		{Code: "OT100", Name: "Training Program Issues", Level: LevelOrganizational, Group: "Resources"},
	}
}
