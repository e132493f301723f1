package schema

// The built-in Maestro command catalog. One flat namespace: a key that is
// both an action and a subcommand (repeat, clearState, env, ...) has a
// single definition, and parents reference it by key in AllowedChildren.

// selectorFieldKeys are the element-matcher keys shared by tap, assert,
// copy and relative-position commands.
func selectorFieldKeys() []string {
	return []string{
		"id", "text", "index", "point", "width", "height", "tolerance",
		"enabled", "checked", "focused", "selected", "optional",
		"containsChild", "containsDescendants", "childOf",
		"below", "above", "leftOf", "rightOf",
	}
}

// commonArgumentKeys are accepted by every action command.
func commonArgumentKeys() []string {
	return []string{"label", "optional"}
}

// actionCommandKeys is the full action set, referenced by the commands
// blocks of repeat, retry, runFlow and the flow hooks. Several of these
// transitively contain the set again, so the grammar graph is cyclic.
func actionCommandKeys() []string {
	return []string{
		"addMedia", "assertNoDefectsWithAI", "assertNotVisible", "assertTrue",
		"assertVisible", "assertWithAI", "back", "clearKeychain", "clearState",
		"copyTextFrom", "doubleTapOn", "eraseText", "evalScript",
		"extendedWaitUntil", "hideKeyboard", "inputRandomEmail",
		"inputRandomNumber", "inputRandomPersonName", "inputRandomText",
		"inputText", "killApp", "launchApp", "longPressOn", "openLink",
		"pasteText", "pressKey", "repeat", "retry", "runFlow", "runScript",
		"scroll", "scrollUntilVisible", "setAirplaneMode", "setLocation",
		"startRecording", "stopApp", "stopRecording", "swipe",
		"takeScreenshot", "tapOn", "toggleAirplaneMode", "travel",
		"waitForAnimationToEnd",
	}
}

// conditionKeys are the keys legal under when, while and similar guards.
func conditionKeys() []string {
	return []string{"visible", "notVisible", "true", "platform"}
}

// childSet flattens key groups into an AllowedChildren set.
func childSet(groups ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, group := range groups {
		for _, key := range group {
			set[key] = struct{}{}
		}
	}
	return set
}

// tapChildren are the children of the tap family: selectors plus the
// tap-specific tuning knobs.
func tapChildren(extra ...string) map[string]struct{} {
	return childSet(
		selectorFieldKeys(),
		commonArgumentKeys(),
		[]string{"retryTapIfNoChange", "waitToSettleTimeoutMs", "waitUntilVisible", "repeat", "delay"},
		extra,
	)
}

func catalog() []CommandDefinition {
	selectors := selectorFieldKeys()
	common := commonArgumentKeys()
	actions := actionCommandKeys()
	conditions := conditionKeys()

	return []CommandDefinition{
		// Config section (before the first --- separator).
		{Key: "appId", Placement: PlacementRoot, AcceptsRawValue: true},
		{Key: "name", Placement: PlacementRoot, AcceptsRawValue: true},
		{Key: "url", Placement: PlacementRoot, AcceptsRawValue: true},
		{Key: "tags", Placement: PlacementRoot, AcceptsUndefinedChildren: true},
		{Key: "env", Placement: PlacementRoot, AcceptsUndefinedChildren: true},
		{Key: "onFlowStart", Placement: PlacementRoot, AllowedChildren: childSet(actions)},
		{Key: "onFlowComplete", Placement: PlacementRoot, AllowedChildren: childSet(actions)},

		// Tap family.
		{Key: "tapOn", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: tapChildren()},
		{Key: "doubleTapOn", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: tapChildren()},
		{Key: "longPressOn", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: tapChildren()},

		// Text input.
		{Key: "inputText", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: childSet(common)},
		{Key: "eraseText", Placement: PlacementAction, AcceptsRawValue: true, AllowedChildren: childSet(common)},
		{Key: "inputRandomEmail", Placement: PlacementAction, AllowedChildren: childSet(common)},
		{Key: "inputRandomPersonName", Placement: PlacementAction, AllowedChildren: childSet(common)},
		{Key: "inputRandomNumber", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"length"})},
		{Key: "inputRandomText", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"length"})},
		{Key: "pasteText", Placement: PlacementAction, AllowedChildren: childSet(common)},
		{Key: "copyTextFrom", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: childSet(selectors, common)},

		// App lifecycle.
		{Key: "launchApp", Placement: PlacementAction, AcceptsRawValue: true, AllowedChildren: childSet(common, []string{"appId", "clearState", "clearKeychain", "stopApp", "permissions", "arguments"})},
		{Key: "stopApp", Placement: PlacementAction, AcceptsRawValue: true, AllowedChildren: childSet(common)},
		{Key: "killApp", Placement: PlacementAction, AcceptsRawValue: true, AllowedChildren: childSet(common)},
		{Key: "clearState", Placement: PlacementAction, AcceptsRawValue: true, AllowedChildren: childSet(common)},
		{Key: "clearKeychain", Placement: PlacementAction, AllowedChildren: childSet(common)},

		// Navigation and keys.
		{Key: "back", Placement: PlacementAction, AllowedChildren: childSet(common)},
		{Key: "hideKeyboard", Placement: PlacementAction, AllowedChildren: childSet(common)},
		{Key: "openLink", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: childSet(common, []string{"link", "autoVerify", "browser"})},
		{Key: "pressKey", Placement: PlacementAction, AcceptsRawValue: true, AllowedChildren: childSet(common)},

		// Scripts and subflows.
		{Key: "runFlow", Placement: PlacementAction, AcceptsRawValue: true, AcceptsFileReferences: true, AllowedChildren: childSet(common, []string{"file", "env", "when", "commands"})},
		{Key: "runScript", Placement: PlacementAction, AcceptsRawValue: true, AcceptsFileReferences: true, AllowedChildren: childSet(common, []string{"file", "env", "when"})},
		{Key: "evalScript", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: childSet(common)},

		// Control flow.
		{Key: "repeat", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"times", "while", "commands"})},
		{Key: "retry", Placement: PlacementAction, AcceptsFileReferences: true, AllowedChildren: childSet(common, []string{"maxRetries", "file", "commands"})},

		// Scrolling and gestures.
		{Key: "scroll", Placement: PlacementAction, AllowedChildren: childSet(common)},
		{Key: "scrollUntilVisible", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"element", "direction", "timeout", "speed", "visibilityPercentage", "centerElement"})},
		{Key: "swipe", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"direction", "duration", "start", "end", "from"})},

		// Waiting.
		{Key: "waitForAnimationToEnd", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"timeout"})},
		{Key: "extendedWaitUntil", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"visible", "notVisible", "timeout"})},

		// Assertions.
		{Key: "assertVisible", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: childSet(selectors, common)},
		{Key: "assertNotVisible", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: childSet(selectors, common)},
		{Key: "assertTrue", Placement: PlacementAction, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: childSet(common, []string{"condition"})},
		{Key: "assertWithAI", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"assertion"})},
		{Key: "assertNoDefectsWithAI", Placement: PlacementAction, AllowedChildren: childSet(common)},

		// Device state.
		{Key: "setLocation", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"latitude", "longitude"})},
		{Key: "travel", Placement: PlacementAction, AllowedChildren: childSet(common, []string{"points", "speed"})},
		{Key: "setAirplaneMode", Placement: PlacementAction, AcceptsRawValue: true, AllowedChildren: childSet(common)},
		{Key: "toggleAirplaneMode", Placement: PlacementAction, AllowedChildren: childSet(common)},

		// Media and recording.
		{Key: "takeScreenshot", Placement: PlacementAction, AcceptsRawValue: true, AllowedChildren: childSet(common, []string{"path"})},
		{Key: "startRecording", Placement: PlacementAction, AcceptsRawValue: true, AllowedChildren: childSet(common, []string{"path"})},
		{Key: "stopRecording", Placement: PlacementAction, AllowedChildren: childSet(common)},
		{Key: "addMedia", Placement: PlacementAction, AcceptsRawValue: true, AcceptsFileReferences: true, AcceptsUndefinedChildren: true},

		// Selector fields.
		{Key: "id", Placement: PlacementField, AcceptsRawValue: true, AcceptsStringInterpolation: true},
		{Key: "text", Placement: PlacementField, AcceptsRawValue: true, AcceptsStringInterpolation: true},
		{Key: "index", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "point", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "width", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "height", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "tolerance", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "enabled", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "checked", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "focused", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "selected", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "containsChild", Placement: PlacementField, AcceptsRawValue: true, AllowedChildren: childSet(selectors)},
		{Key: "containsDescendants", Placement: PlacementField, AcceptsUndefinedChildren: true},
		{Key: "childOf", Placement: PlacementField, AllowedChildren: childSet(selectors)},
		{Key: "below", Placement: PlacementField, AcceptsRawValue: true, AllowedChildren: childSet(selectors)},
		{Key: "above", Placement: PlacementField, AcceptsRawValue: true, AllowedChildren: childSet(selectors)},
		{Key: "leftOf", Placement: PlacementField, AcceptsRawValue: true, AllowedChildren: childSet(selectors)},
		{Key: "rightOf", Placement: PlacementField, AcceptsRawValue: true, AllowedChildren: childSet(selectors)},

		// Common argument fields.
		{Key: "label", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "optional", Placement: PlacementField, AcceptsRawValue: true},

		// Tap tuning fields.
		{Key: "retryTapIfNoChange", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "waitToSettleTimeoutMs", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "waitUntilVisible", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "delay", Placement: PlacementField, AcceptsRawValue: true},

		// Script / subflow argument fields.
		{Key: "file", Placement: PlacementField, AcceptsRawValue: true, AcceptsFileReferences: true},
		{Key: "commands", Placement: PlacementField, AllowedChildren: childSet(actions)},
		{Key: "when", Placement: PlacementField, AllowedChildren: childSet(conditions)},
		{Key: "while", Placement: PlacementField, AllowedChildren: childSet(conditions)},
		{Key: "visible", Placement: PlacementField, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: childSet(selectors)},
		{Key: "notVisible", Placement: PlacementField, AcceptsRawValue: true, AcceptsStringInterpolation: true, AllowedChildren: childSet(selectors)},
		{Key: "true", Placement: PlacementField, AcceptsRawValue: true, AcceptsStringInterpolation: true},
		{Key: "platform", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "condition", Placement: PlacementField, AcceptsRawValue: true, AcceptsStringInterpolation: true},
		{Key: "times", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "maxRetries", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "timeout", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "speed", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "direction", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "duration", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "start", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "end", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "from", Placement: PlacementField, AcceptsRawValue: true, AllowedChildren: childSet(selectors)},
		{Key: "element", Placement: PlacementField, AcceptsRawValue: true, AllowedChildren: childSet(selectors)},
		{Key: "visibilityPercentage", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "centerElement", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "latitude", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "longitude", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "points", Placement: PlacementField, AcceptsUndefinedChildren: true},
		{Key: "permissions", Placement: PlacementField, AcceptsUndefinedChildren: true},
		{Key: "arguments", Placement: PlacementField, AcceptsUndefinedChildren: true},
		{Key: "link", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "autoVerify", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "browser", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "length", Placement: PlacementField, AcceptsRawValue: true},
		{Key: "path", Placement: PlacementField, AcceptsRawValue: true, AcceptsFileReferences: true},
		{Key: "assertion", Placement: PlacementField, AcceptsRawValue: true},
	}
}
