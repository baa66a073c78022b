package html

// CSRFFormScript injects a hidden _csrf field into POST forms based on the CSRF
// cookie and adds the token header to htmx requests. Forms swapped in by htmx
// are covered through htmx:load.
func CSRFFormScript() string {
	return `<script>
(function () {
  function getCookie(name) {
    var prefix = name + "=";
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf(prefix) === 0) return decodeURIComponent(c.substring(prefix.length));
    }
    return "";
  }

  function inject(root) {
    var token = getCookie("X-CSRF-Token");
    if (!token) return;

    var forms = (root || document).querySelectorAll("form");
    for (var i = 0; i < forms.length; i++) {
      var form = forms[i];
      var method = (form.getAttribute("method") || "GET").toUpperCase();
      if (method !== "POST") continue;
      if (form.querySelector("input[name='_csrf']")) continue;

      var input = document.createElement("input");
      input.type = "hidden";
      input.name = "_csrf";
      input.value = token;
      form.appendChild(input);
    }
  }

  document.addEventListener("htmx:configRequest", function (evt) {
    var token = getCookie("X-CSRF-Token");
    if (token) evt.detail.headers["X-CSRF-Token"] = token;
  });
  document.addEventListener("htmx:load", function (evt) {
    inject(evt.target && evt.target.querySelectorAll ? evt.target : document);
  });

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", function () { inject(document); });
  } else {
    inject(document);
  }
})();
</script>`
}
