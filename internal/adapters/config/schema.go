package config

// Makefile represents the structure of the pmake.yaml recipe file.
type Makefile struct {
	// Phony lists target names not represented by filesystem paths.
	Phony []string `yaml:"phony"`

	// Recipes maps a target name to its declaration.
	Recipes map[string]RecipeDTO `yaml:"recipes"`
}

// RecipeDTO represents one recipe declaration.
type RecipeDTO struct {
	// Deps are prerequisite names, resolved in declared order.
	Deps []string `yaml:"deps"`

	// Run is the argv of the command producing the target. May be empty
	// for pure aggregation recipes.
	Run []string `yaml:"run"`

	// Env overrides environment variables for the command.
	Env map[string]string `yaml:"env"`

	// Rebuild selects the rebuild policy: auto (default), no, always, or
	// autoWithDir.
	Rebuild string `yaml:"rebuild"`

	// Doc is shown by `pmake list` for phony recipes.
	Doc string `yaml:"doc"`
}
