package catalog

import "fmt"

// validateCatalog checks field presence and in-catalog slug uniqueness for
// every mode, category, and rule in a loaded catalog. modesKey and catsKey
// are the YAML keys the arrays were decoded from, so violations name the
// exact document path (e.g. customModes[2].rules[0].path).
func validateCatalog(c *Catalog, modesKey, catsKey string) error {
	var errs []ValidationError

	errs = append(errs, validateModes(c.Modes, modesKey)...)
	errs = append(errs, validateCategories(c.Categories, catsKey)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateModes checks every mode record and its rules.
func validateModes(modes []ModeDefinition, key string) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int, len(modes))

	for i, m := range modes {
		path := fmt.Sprintf("%s[%d]", key, i)

		if m.Slug == "" {
			errs = append(errs, ValidationError{
				Field:   path + ".slug",
				Message: "required field is empty",
				Wrapped: ErrInvalidCatalog,
			})
		} else if prev, dup := seen[NormalizeSlug(m.Slug)]; dup {
			errs = append(errs, ValidationError{
				Field:   path + ".slug",
				Message: fmt.Sprintf("duplicates %s[%d].slug", key, prev),
				Value:   m.Slug,
				Wrapped: ErrDuplicateSlug,
			})
		} else {
			seen[NormalizeSlug(m.Slug)] = i
		}

		if m.Name == "" {
			errs = append(errs, ValidationError{
				Field:   path + ".name",
				Message: "required field is empty",
				Wrapped: ErrInvalidCatalog,
			})
		}
		if m.Description == "" {
			errs = append(errs, ValidationError{
				Field:   path + ".description",
				Message: "required field is empty",
				Wrapped: ErrInvalidCatalog,
			})
		}

		for j, c := range m.Categories {
			if NormalizeSlug(c) == "" {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.categories[%d]", path, j),
					Message: "category slug must not be empty",
					Wrapped: ErrInvalidCatalog,
				})
			}
		}

		errs = append(errs, validateRules(m.Rules, path)...)
	}

	return errs
}

// validateRules checks every rule record of one mode.
func validateRules(rules []Rule, modePath string) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int, len(rules))

	for i, r := range rules {
		path := fmt.Sprintf("%s.rules[%d]", modePath, i)

		if r.Slug == "" {
			errs = append(errs, ValidationError{
				Field:   path + ".slug",
				Message: "required field is empty",
				Wrapped: ErrInvalidCatalog,
			})
		} else if prev, dup := seen[NormalizeSlug(r.Slug)]; dup {
			errs = append(errs, ValidationError{
				Field:   path + ".slug",
				Message: fmt.Sprintf("duplicates %s.rules[%d].slug", modePath, prev),
				Value:   r.Slug,
				Wrapped: ErrDuplicateSlug,
			})
		} else {
			seen[NormalizeSlug(r.Slug)] = i
		}

		if r.Name == "" {
			errs = append(errs, ValidationError{
				Field:   path + ".name",
				Message: "required field is empty",
				Wrapped: ErrInvalidCatalog,
			})
		}
		if r.Path == "" {
			errs = append(errs, ValidationError{
				Field:   path + ".path",
				Message: "required field is empty",
				Wrapped: ErrInvalidCatalog,
			})
		}
	}

	return errs
}

// validateCategories checks every category record.
func validateCategories(cats []CategoryDefinition, key string) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int, len(cats))

	for i, c := range cats {
		path := fmt.Sprintf("%s[%d]", key, i)

		if c.Slug == "" {
			errs = append(errs, ValidationError{
				Field:   path + ".slug",
				Message: "required field is empty",
				Wrapped: ErrInvalidCatalog,
			})
		} else if prev, dup := seen[NormalizeSlug(c.Slug)]; dup {
			errs = append(errs, ValidationError{
				Field:   path + ".slug",
				Message: fmt.Sprintf("duplicates %s[%d].slug", key, prev),
				Value:   c.Slug,
				Wrapped: ErrDuplicateSlug,
			})
		} else {
			seen[NormalizeSlug(c.Slug)] = i
		}

		if c.Name == "" {
			errs = append(errs, ValidationError{
				Field:   path + ".name",
				Message: "required field is empty",
				Wrapped: ErrInvalidCatalog,
			})
		}
	}

	return errs
}
