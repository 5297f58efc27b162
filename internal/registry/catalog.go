package registry

// defaultCatalog is the built-in movement catalog. IDs are stable; persisted
// workouts reference them, so entries may be added but never renamed.
//
//nolint:gochecknoglobals // immutable catalog loaded once at startup.
var defaultCatalog = []Movement{
	// Olympic lifting.
	{ID: "snatch", Name: "Snatch", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicSnatch, PatternHinge, PatternSquat}, Equipment: []string{EquipmentBarbell}},
	{ID: "power_snatch", Name: "Power Snatch", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicSnatch, PatternHinge}, Equipment: []string{EquipmentBarbell}},
	{ID: "hang_snatch", Name: "Hang Snatch", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicSnatch}, Equipment: []string{EquipmentBarbell}},
	{ID: "snatch_pull", Name: "Snatch Pull", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicSnatch, PatternHinge}, Equipment: []string{EquipmentBarbell}},
	{ID: "snatch_balance", Name: "Snatch Balance", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicSnatch, PatternSquat}, Equipment: []string{EquipmentBarbell}},
	{ID: "overhead_squat", Name: "Overhead Squat", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicSnatch, PatternSquat}, Equipment: []string{EquipmentBarbell}},
	{ID: "clean_and_jerk", Name: "Clean and Jerk", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicClean, PatternOlympicJerk, PatternHinge}, Equipment: []string{EquipmentBarbell}},
	{ID: "power_clean", Name: "Power Clean", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicClean, PatternHinge}, Equipment: []string{EquipmentBarbell}},
	{ID: "hang_power_clean", Name: "Hang Power Clean", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicClean}, Equipment: []string{EquipmentBarbell}},
	{ID: "clean_pull", Name: "Clean Pull", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicClean, PatternHinge}, Equipment: []string{EquipmentBarbell}},
	{ID: "split_jerk", Name: "Split Jerk", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicJerk, PatternPressOverhead}, Equipment: []string{EquipmentBarbell}},
	{ID: "push_jerk", Name: "Push Jerk", Category: CategoryOlympic,
		Patterns: []string{PatternOlympicJerk, PatternPressOverhead}, Equipment: []string{EquipmentBarbell}},

	// Powerlifting and barbell strength.
	{ID: "back_squat", Name: "Back Squat", Category: CategoryPowerlifting,
		Patterns: []string{PatternSquat}, Equipment: []string{EquipmentBarbell}},
	{ID: "front_squat", Name: "Front Squat", Category: CategoryPowerlifting,
		Patterns: []string{PatternSquat}, Equipment: []string{EquipmentBarbell}},
	{ID: "pause_squat", Name: "Pause Back Squat", Category: CategoryPowerlifting,
		Patterns: []string{PatternSquat}, Equipment: []string{EquipmentBarbell}},
	{ID: "deadlift", Name: "Deadlift", Category: CategoryPowerlifting,
		Patterns: []string{PatternHinge}, Equipment: []string{EquipmentBarbell}},
	{ID: "romanian_deadlift", Name: "Romanian Deadlift", Category: CategoryPowerlifting,
		Patterns: []string{PatternHinge}, Equipment: []string{EquipmentBarbell}},
	{ID: "deficit_deadlift", Name: "Deficit Deadlift", Category: CategoryPowerlifting,
		Patterns: []string{PatternHinge}, Equipment: []string{EquipmentBarbell}},
	{ID: "good_morning", Name: "Good Morning", Category: CategoryPowerlifting,
		Patterns: []string{PatternHinge}, Equipment: []string{EquipmentBarbell}},
	{ID: "bench_press", Name: "Bench Press", Category: CategoryPowerlifting,
		Patterns: []string{PatternPush}, Equipment: []string{EquipmentBarbell, EquipmentBench}},
	{ID: "close_grip_bench", Name: "Close-Grip Bench Press", Category: CategoryPowerlifting,
		Patterns: []string{PatternPush}, Equipment: []string{EquipmentBarbell, EquipmentBench}},
	{ID: "overhead_press", Name: "Overhead Press", Category: CategoryPowerlifting,
		Patterns: []string{PatternPressOverhead, PatternPush}, Equipment: []string{EquipmentBarbell}},
	{ID: "barbell_row", Name: "Barbell Row", Category: CategoryPowerlifting,
		Patterns: []string{PatternPull}, Equipment: []string{EquipmentBarbell}},
	{ID: "hip_thrust", Name: "Hip Thrust", Category: CategoryPowerlifting,
		Patterns: []string{PatternHinge}, Equipment: []string{EquipmentBarbell, EquipmentBench}},
	{ID: "thruster", Name: "Thruster", Category: CategoryPowerlifting,
		Patterns: []string{PatternSquat, PatternPressOverhead}, Equipment: []string{EquipmentBarbell}},

	// Dumbbell and kettlebell accessory work.
	{ID: "goblet_squat", Name: "Goblet Squat", Category: CategoryAccessory,
		Patterns: []string{PatternSquat}, Equipment: []string{EquipmentKettlebell}},
	{ID: "kettlebell_swing", Name: "Kettlebell Swing", Category: CategoryAccessory,
		Patterns: []string{PatternSwing, PatternHinge}, Equipment: []string{EquipmentKettlebell}},
	{ID: "kettlebell_clean", Name: "Kettlebell Clean", Category: CategoryAccessory,
		Patterns: []string{PatternOlympicClean, PatternHinge}, Equipment: []string{EquipmentKettlebell}},
	{ID: "dumbbell_snatch", Name: "Dumbbell Snatch", Category: CategoryAccessory,
		Patterns: []string{PatternOlympicSnatch, PatternHinge}, Equipment: []string{EquipmentDumbbell}},
	{ID: "dumbbell_lunge", Name: "Dumbbell Lunge", Category: CategoryAccessory,
		Patterns: []string{PatternLunge}, Equipment: []string{EquipmentDumbbell}},
	{ID: "dumbbell_press", Name: "Dumbbell Bench Press", Category: CategoryAccessory,
		Patterns: []string{PatternPush}, Equipment: []string{EquipmentDumbbell, EquipmentBench}},
	{ID: "dumbbell_push_press", Name: "Dumbbell Push Press", Category: CategoryAccessory,
		Patterns: []string{PatternPressOverhead}, Equipment: []string{EquipmentDumbbell}},
	{ID: "dumbbell_row", Name: "Dumbbell Row", Category: CategoryAccessory,
		Patterns: []string{PatternPull}, Equipment: []string{EquipmentDumbbell}},
	{ID: "dumbbell_thruster", Name: "Dumbbell Thruster", Category: CategoryAccessory,
		Patterns: []string{PatternSquat, PatternPressOverhead}, Equipment: []string{EquipmentDumbbell}},
	{ID: "farmer_carry", Name: "Farmer Carry", Category: CategoryAccessory,
		Patterns: []string{PatternCarry}, Equipment: []string{EquipmentKettlebell}},
	{ID: "wall_ball", Name: "Wall Ball", Category: CategoryAccessory,
		Patterns: []string{PatternSquat, PatternPush}, Equipment: []string{EquipmentMedicineBall}},
	{ID: "loaded_step_over", Name: "Loaded Step-Over", Category: CategoryAccessory,
		Patterns: []string{PatternLunge, PatternCarry}, Equipment: []string{EquipmentDumbbell, EquipmentBox}},

	// Gymnastics and bodyweight.
	{ID: "pull_up", Name: "Pull-Up", Category: CategoryGymnastics,
		Patterns: []string{PatternPull}, Equipment: []string{EquipmentPullUpBar}},
	{ID: "chest_to_bar", Name: "Chest-to-Bar Pull-Up", Category: CategoryGymnastics,
		Patterns: []string{PatternPull}, Equipment: []string{EquipmentPullUpBar}},
	{ID: "toes_to_bar", Name: "Toes-to-Bar", Category: CategoryGymnastics,
		Patterns: []string{PatternCore}, Equipment: []string{EquipmentPullUpBar}},
	{ID: "push_up", Name: "Push-Up", Category: CategoryGymnastics,
		Patterns: []string{PatternPush}},
	{ID: "handstand_push_up", Name: "Handstand Push-Up", Category: CategoryGymnastics,
		Patterns: []string{PatternPressOverhead, PatternPush}},
	{ID: "burpee", Name: "Burpee", Category: CategoryGymnastics,
		Patterns: []string{PatternBurpee, PatternPush, PatternJump}},
	{ID: "box_jump", Name: "Box Jump", Category: CategoryGymnastics,
		Patterns: []string{PatternJump}, Equipment: []string{EquipmentBox}},
	{ID: "walking_lunge", Name: "Walking Lunge", Category: CategoryGymnastics,
		Patterns: []string{PatternLunge}},
	{ID: "air_squat", Name: "Air Squat", Category: CategoryGymnastics,
		Patterns: []string{PatternSquat}, BannedInMainWhenLoaded: true},
	{ID: "jumping_jack", Name: "Jumping Jack", Category: CategoryGymnastics,
		Patterns: []string{PatternJump}, BannedInMainWhenLoaded: true},
	{ID: "high_knees", Name: "High Knees", Category: CategoryGymnastics,
		Patterns: []string{PatternMonoRun}, BannedInMainWhenLoaded: true},
	{ID: "mountain_climber", Name: "Mountain Climber", Category: CategoryGymnastics,
		Patterns: []string{PatternCore}, BannedInMainWhenLoaded: true},

	// Core.
	{ID: "plank", Name: "Plank", Category: CategoryCore, Patterns: []string{PatternCore}},
	{ID: "hollow_hold", Name: "Hollow Hold", Category: CategoryCore, Patterns: []string{PatternCore}},
	{ID: "v_up", Name: "V-Up", Category: CategoryCore, Patterns: []string{PatternCore}},
	{ID: "sit_up", Name: "Sit-Up", Category: CategoryCore, Patterns: []string{PatternCore}},
	{ID: "russian_twist", Name: "Russian Twist", Category: CategoryCore, Patterns: []string{PatternCore}},
	{ID: "back_extension", Name: "Back Extension", Category: CategoryCore,
		Patterns: []string{PatternCore, PatternHinge}},

	// Monostructural cardio.
	{ID: "row", Name: "Row", Category: CategoryMonostructural,
		Patterns: []string{PatternMonoRow}, Equipment: []string{EquipmentRower}},
	{ID: "bike_erg", Name: "Bike Erg", Category: CategoryMonostructural,
		Patterns: []string{PatternMonoBike}, Equipment: []string{EquipmentBike}},
	{ID: "run", Name: "Run", Category: CategoryMonostructural,
		Patterns: []string{PatternMonoRun}},
	{ID: "ski_erg", Name: "Ski Erg", Category: CategoryMonostructural,
		Patterns: []string{PatternMonoSki}, Equipment: []string{EquipmentSkiErg}},
	{ID: "double_under", Name: "Double-Under", Category: CategoryMonostructural,
		Patterns: []string{PatternMonoJumpRope, PatternJump}, Equipment: []string{EquipmentJumpRope}},
	{ID: "single_under", Name: "Single-Under", Category: CategoryMonostructural,
		Patterns: []string{PatternMonoJumpRope}, Equipment: []string{EquipmentJumpRope}, BannedInMainWhenLoaded: true},

	// Recovery and mobility for cooldowns.
	{ID: "easy_row", Name: "Easy Row", Category: CategoryRecovery,
		Patterns: []string{PatternStretch, PatternMonoRow}, Equipment: []string{EquipmentRower}},
	{ID: "couch_stretch", Name: "Couch Stretch", Category: CategoryRecovery, Patterns: []string{PatternStretch}},
	{ID: "pigeon_pose", Name: "Pigeon Pose", Category: CategoryRecovery, Patterns: []string{PatternStretch}},
	{ID: "childs_pose", Name: "Child's Pose", Category: CategoryRecovery, Patterns: []string{PatternStretch}},
	{ID: "cat_cow", Name: "Cat-Cow", Category: CategoryRecovery, Patterns: []string{PatternStretch}},
	{ID: "thoracic_opener", Name: "Thoracic Opener", Category: CategoryRecovery, Patterns: []string{PatternStretch}},
	{ID: "hamstring_stretch", Name: "Hamstring Stretch", Category: CategoryRecovery, Patterns: []string{PatternStretch}},
}
