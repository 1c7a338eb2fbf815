package repo

import (
	"path"
	"sort"
)

// Installation returns shell commands that install the project, chosen by
// primary language and the manifests present.
func Installation(lang string, l Listing, m *Manifests) []string {
	switch lang {
	case "Python":
		switch {
		case l.HasFile(fileRequirements):
			return []string{"pip install -r requirements.txt"}
		case l.HasFile(fileSetupPy), l.HasFile(filePyProject):
			return []string{"pip install ."}
		}
	case "JavaScript", "TypeScript":
		if l.HasFile(filePackageJSON) {
			return []string{"npm install", "# or", "yarn install"}
		}
	case "Go":
		if m.GoMod != nil && m.GoMod.Module != nil {
			if len(mainPackages(l)) > 0 {
				return []string{"go install " + m.GoMod.Module.Mod.Path + "/...@latest"}
			}
			return []string{"go get " + m.GoMod.Module.Mod.Path}
		}
	case "Rust":
		if l.HasFile(fileCargo) {
			return []string{"cargo build --release"}
		}
	case "Java":
		switch {
		case l.HasFile("pom.xml"):
			return []string{"mvn install"}
		case l.HasFile("build.gradle"):
			return []string{"gradle build"}
		}
	case "PHP":
		if l.HasFile(fileComposer) {
			return []string{"composer install"}
		}
	case "Ruby":
		if l.HasFile(fileGemfile) {
			return []string{"bundle install"}
		}
	case "C", "C++":
		switch {
		case l.HasFile("CMakeLists.txt"):
			return []string{"cmake -B build", "cmake --build build"}
		case l.HasFile(fileMakefile):
			return []string{"make"}
		}
	}

	if l.HasFile(filePubspec) {
		return []string{"dart pub get"}
	}
	return nil
}

// Usage returns example commands that run the project.
func Usage(lang string, l Listing, m *Manifests) []string {
	switch lang {
	case "Python":
		for _, entry := range []string{"main.py", "app.py"} {
			if l.HasFile(entry) {
				return []string{"python " + entry}
			}
		}
		if l.HasFile("manage.py") {
			return []string{"python manage.py runserver"}
		}
	case "JavaScript", "TypeScript":
		if pkg := m.Package; pkg != nil {
			if _, ok := pkg.Scripts["start"]; ok {
				return []string{"npm start"}
			}
			if _, ok := pkg.Scripts["dev"]; ok {
				return []string{"npm run dev"}
			}
			if pkg.Main != "" {
				return []string{"node " + pkg.Main}
			}
		}
		if l.HasFile("index.js") {
			return []string{"node index.js"}
		}
	case "Go":
		mains := mainPackages(l)
		if len(mains) > 0 {
			var cmds []string
			for _, dir := range mains {
				if dir == "." {
					cmds = append(cmds, "go run .")
				} else {
					cmds = append(cmds, "go run ./"+dir)
				}
			}
			return cmds
		}
	case "Rust":
		if l.HasFile(fileCargo) {
			return []string{"cargo run"}
		}
	case "Ruby":
		if l.HasFile("config.ru") {
			return []string{"bundle exec rackup"}
		}
	}
	return nil
}

// mainPackages returns the directories that hold a Go main.go: the root
// (".") and cmd/<name>.
func mainPackages(l Listing) []string {
	var dirs []string
	if l.HasFile("main.go") {
		dirs = append(dirs, ".")
	}
	for p, fi := range l {
		if fi.Dir || path.Base(p) != "main.go" {
			continue
		}
		dir := path.Dir(p)
		if path.Dir(dir) == "cmd" {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}
