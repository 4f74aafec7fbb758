package delivery

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InjectionScript builds the JavaScript that delivers text into a loaded
// service page: find the composer by trying selectors in order, set its
// value through the native setter so React-style frameworks observe the
// change, dispatch the profile's events, then click a submit button or fall
// back to a synthetic Enter keydown.
func InjectionScript(p *Profile, text string) (string, error) {
	textJSON, err := json.Marshal(text)
	if err != nil {
		return "", fmt.Errorf("encode prompt text: %w", err)
	}
	inputsJSON, err := json.Marshal(p.InputSelectors)
	if err != nil {
		return "", fmt.Errorf("encode input selectors: %w", err)
	}
	submitsJSON, err := json.Marshal(p.SubmitSelectors)
	if err != nil {
		return "", fmt.Errorf("encode submit selectors: %w", err)
	}
	events := p.Events
	if len(events) == 0 {
		events = []string{"input", "change"}
	}
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("encode events: %w", err)
	}

	var b strings.Builder
	b.WriteString("(function() {\n")
	fmt.Fprintf(&b, "  var text = %s;\n", textJSON)
	fmt.Fprintf(&b, "  var inputSelectors = %s;\n", inputsJSON)
	fmt.Fprintf(&b, "  var submitSelectors = %s;\n", submitsJSON)
	fmt.Fprintf(&b, "  var events = %s;\n", eventsJSON)
	b.WriteString(`  var input = null;
  for (var i = 0; i < inputSelectors.length; i++) {
    input = document.querySelector(inputSelectors[i]);
    if (input) break;
  }
  if (!input) return;
`)
	if !p.SkipFocusEvents {
		b.WriteString("  input.focus();\n")
	}
	b.WriteString(`  if (input.isContentEditable) {
    input.textContent = text;
  } else {
    var proto = Object.getPrototypeOf(input);
    var desc = Object.getOwnPropertyDescriptor(proto, 'value');
    if (desc && desc.set) {
      desc.set.call(input, text);
    } else {
      input.value = text;
    }
  }
  for (var j = 0; j < events.length; j++) {
    input.dispatchEvent(new Event(events[j], { bubbles: true }));
  }
  setTimeout(function() {
    var button = null;
    for (var k = 0; k < submitSelectors.length; k++) {
      button = document.querySelector(submitSelectors[k]);
      if (button && !button.disabled) break;
      button = null;
    }
    if (button) {
      button.click();
    } else {
      input.dispatchEvent(new KeyboardEvent('keydown', {
        key: 'Enter', code: 'Enter', keyCode: 13, which: 13, bubbles: true
      }));
    }
  }, 150);
})();
`)
	return b.String(), nil
}
