package agent

// Response schemas, one per structured action/mode pairing. The closed
// "type" enum on the analysis schemas tags which variant came back.

func foodAnalysisSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"type":        {Type: TypeString, Enum: []string{"FOOD"}},
			"foodName":    {Type: TypeString},
			"description": {Type: TypeString},
			"calories":    {Type: TypeNumber},
			"protein":     {Type: TypeNumber},
			"carbs":       {Type: TypeNumber},
			"fat":         {Type: TypeNumber},
			"confidence":  {Type: TypeString},
			"suggestedRecipes": {Type: TypeArray, Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"name":        {Type: TypeString},
					"description": {Type: TypeString},
				},
			}},
		},
		Required: []string{"type", "foodName", "calories", "protein", "carbs", "fat", "description", "suggestedRecipes"},
	}
}

func documentAnalysisSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"type":            {Type: TypeString, Enum: []string{"DOCUMENT"}},
			"title":           {Type: TypeString},
			"summary":         {Type: TypeString},
			"riskLevel":       {Type: TypeString, Enum: []string{"Low", "Medium", "High"}},
			"keyPoints":       {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"risks":           {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"recommendation":  {Type: TypeString},
			"missingClauses":  {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"actionableSteps": {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
		Required: []string{"type", "title", "summary", "riskLevel", "keyPoints", "risks", "recommendation"},
	}
}

func equipmentAnalysisSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"type":          {Type: TypeString, Enum: []string{"EQUIPMENT"}},
			"equipmentName": {Type: TypeString},
			"description":   {Type: TypeString},
			"targetMuscles": {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"exercises": {Type: TypeArray, Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"name": {Type: TypeString},
					"tips": {Type: TypeString},
				},
			}},
		},
		Required: []string{"type", "equipmentName", "description", "targetMuscles", "exercises"},
	}
}

func landmarkAnalysisSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"type":         {Type: TypeString, Enum: []string{"LANDMARK"}},
			"landmarkName": {Type: TypeString},
			"location":     {Type: TypeString},
			"history":      {Type: TypeString},
			"tips":         {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
		Required: []string{"type", "landmarkName", "location", "history", "tips"},
	}
}

func fashionAnalysisSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"type":         {Type: TypeString, Enum: []string{"FASHION"}},
			"styleName":    {Type: TypeString},
			"occasion":     {Type: TypeString},
			"colorPalette": {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"advice":       {Type: TypeString},
		},
		Required: []string{"type", "styleName", "occasion", "colorPalette", "advice"},
	}
}

func recipeListSchema() *Schema {
	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"name":               {Type: TypeString},
				"time":               {Type: TypeString},
				"calories":           {Type: TypeNumber},
				"difficulty":         {Type: TypeString},
				"ingredients":        {Type: TypeArray, Items: &Schema{Type: TypeString}},
				"missingIngredients": {Type: TypeArray, Items: &Schema{Type: TypeString}},
				"instructions":       {Type: TypeArray, Items: &Schema{Type: TypeString}},
			},
			Required: []string{"name", "time", "ingredients", "instructions", "calories", "difficulty"},
		},
	}
}

func weeklyPlanSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"schedule": {Type: TypeArray, Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"day": {Type: TypeString},
					"meals": {Type: TypeArray, Items: &Schema{
						Type: TypeObject,
						Properties: map[string]*Schema{
							"type":     {Type: TypeString},
							"name":     {Type: TypeString},
							"calories": {Type: TypeNumber},
						},
					}},
				},
			}},
			"shoppingList": {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
		Required: []string{"schedule", "shoppingList"},
	}
}

func workoutSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"title":      {Type: TypeString},
			"duration":   {Type: TypeString},
			"difficulty": {Type: TypeString},
			"exercises": {Type: TypeArray, Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"name":  {Type: TypeString},
					"sets":  {Type: TypeNumber},
					"reps":  {Type: TypeString},
					"rest":  {Type: TypeString},
					"notes": {Type: TypeString},
				},
				Required: []string{"name", "sets", "reps", "notes"},
			}},
		},
		Required: []string{"title", "duration", "difficulty", "exercises"},
	}
}

func itinerarySchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"destination":       {Type: TypeString},
			"totalCostEstimate": {Type: TypeString},
			"itinerary": {Type: TypeArray, Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"day":   {Type: TypeNumber},
					"theme": {Type: TypeString},
					"activities": {Type: TypeArray, Items: &Schema{
						Type: TypeObject,
						Properties: map[string]*Schema{
							"time":        {Type: TypeString},
							"activity":    {Type: TypeString},
							"description": {Type: TypeString},
						},
					}},
				},
			}},
		},
		Required: []string{"destination", "totalCostEstimate", "itinerary"},
	}
}

func wardrobeSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"title":        {Type: TypeString},
			"colorPalette": {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"items": {Type: TypeArray, Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"category":    {Type: TypeString},
					"name":        {Type: TypeString},
					"color":       {Type: TypeString},
					"description": {Type: TypeString},
				},
			}},
			"stylingTips": {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
		Required: []string{"title", "colorPalette", "items", "stylingTips"},
	}
}
